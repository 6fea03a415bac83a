package http

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/service"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store/drivers/sqlite"
	"github.com/yokohama-dev/tsukuba/pkg/checkinsdk"
	"github.com/yokohama-dev/tsukuba/pkg/httpx"
	"github.com/yokohama-dev/tsukuba/pkg/jwtx"
)

// newSigninFixture registers a user and returns the signin handler together
// with the minted bearer credential.
func newSigninFixture(t *testing.T) (*SigninHandler, string) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	userSvc := &service.UserService{Store: st}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer, err := jwtx.NewEdDSASigner(key, "test-issuer")
	require.NoError(t, err)
	sessionSvc := &service.SessionService{Store: st, Signer: signer}

	_, credential, err := userSvc.Register(t.Context(), service.RegisterParams{
		ScreenName: "signin_user",
		Name:       "Signin User",
		Visibility: domain.VisibilityPublic,
		Listed:     true,
	})
	require.NoError(t, err)

	handler := &SigninHandler{UserService: userSvc, SessionService: sessionSvc}
	return handler, credential
}

func signin(t *testing.T, h *SigninHandler, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/users/me/signin", nil)
	req.Header.Set("Authorization", authorization)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSigninAcceptsBearerScheme(t *testing.T) {
	handler, credential := newSigninFixture(t)

	rec := signin(t, handler, "Bearer "+credential)
	require.Equal(t, http.StatusOK, rec.Code)

	var user checkinsdk.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	require.Equal(t, "signin_user", user.ScreenName)

	// A session cookie must accompany the profile.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, httpx.SessionCookieName, cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}

func TestSigninAcceptsBareCredential(t *testing.T) {
	handler, credential := newSigninFixture(t)

	rec := signin(t, handler, credential)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSigninRejectsBadCredential(t *testing.T) {
	handler, credential := newSigninFixture(t)

	for name, authorization := range map[string]string{
		"wrong secret":  credential + "x",
		"empty header":  "",
		"scheme only":   "Bearer ",
		"garbage token": "Bearer not-a-credential",
	} {
		t.Run(name, func(t *testing.T) {
			rec := signin(t, handler, authorization)
			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var body checkinsdk.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, "Invalid token", body.Error)
		})
	}
}
