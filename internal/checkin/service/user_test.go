package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/pkg/jwtx"
)

func newTestSessionService(t *testing.T, svc *UserService) *SessionService {
	t.Helper()

	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer, err := jwtx.NewEdDSASigner(key, "test-issuer")
	require.NoError(t, err)

	return &SessionService{Store: svc.Store, Signer: signer}
}

func TestValidScreenName(t *testing.T) {
	t.Parallel()

	valid := []string{"abcd", "user_01", "a_b_c_d", "0123456789abcdef"}
	for _, s := range valid {
		require.True(t, ValidScreenName(s), s)
	}

	invalid := []string{"", "abc", "toolongscreenname", "UpperCase", "has-dash", "with space", "@name"}
	for _, s := range invalid {
		require.False(t, ValidScreenName(s), s)
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	t.Run("creates user and mints credential", func(t *testing.T) {
		user, credential, err := svc.Register(ctx, RegisterParams{
			ScreenName: "new_user",
			Name:       "New User",
			Visibility: domain.VisibilityPublic,
			Listed:     true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "new_user", user.ScreenName)
		require.True(t, strings.HasPrefix(credential, user.ID+":"))

		// Only the hash is stored, never the secret.
		require.NotContains(t, user.HashedToken, strings.TrimPrefix(credential, user.ID+":"))
	})

	t.Run("rejects duplicate screen name", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterParams{
			ScreenName: "new_user",
			Visibility: domain.VisibilityPublic,
		})
		require.ErrorIs(t, err, ErrScreenNameTaken)
	})

	t.Run("rejects invalid screen name", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterParams{
			ScreenName: "No",
			Visibility: domain.VisibilityPublic,
		})
		require.ErrorIs(t, err, ErrInvalidScreenName)
	})

	t.Run("rejects unknown visibility", func(t *testing.T) {
		_, _, err := svc.Register(ctx, RegisterParams{
			ScreenName: "vis_user",
			Visibility: domain.Visibility("friends"),
		})
		require.ErrorIs(t, err, ErrInvalidVisibility)
	})
}

func TestVerifyCredential(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}
	sessions := newTestSessionService(t, svc)

	user, credential, err := svc.Register(ctx, RegisterParams{
		ScreenName: "cred_user",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	t.Run("accepts the minted credential", func(t *testing.T) {
		got, err := sessions.VerifyCredential(ctx, credential)
		require.NoError(t, err)
		require.Equal(t, user.ID, got)
	})

	t.Run("rejects a wrong secret", func(t *testing.T) {
		_, err := sessions.VerifyCredential(ctx, Credential(user.ID, "wrong-secret"))
		require.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("rejects an unknown user", func(t *testing.T) {
		_, err := sessions.VerifyCredential(ctx, Credential("01UNKNOWNULID", "secret"))
		require.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("rejects malformed forms", func(t *testing.T) {
		for _, bad := range []string{"", "no-separator", ":secret", user.ID + ":"} {
			_, err := sessions.VerifyCredential(ctx, bad)
			require.ErrorIs(t, err, ErrInvalidCredential, bad)
		}
	})
}

func TestRotateCredential(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}
	sessions := newTestSessionService(t, svc)

	user, original, err := svc.Register(ctx, RegisterParams{
		ScreenName: "rotate_me",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	rotated, err := svc.RotateCredential(ctx, user.ID)
	require.NoError(t, err)
	require.NotEqual(t, original, rotated)

	_, err = sessions.VerifyCredential(ctx, original)
	require.ErrorIs(t, err, ErrInvalidCredential)

	got, err := sessions.VerifyCredential(ctx, rotated)
	require.NoError(t, err)
	require.Equal(t, user.ID, got)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}
	sessions := newTestSessionService(t, svc)

	user, _, err := svc.Register(ctx, RegisterParams{
		ScreenName: "session_me",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	token, err := sessions.IssueSession(user)
	require.NoError(t, err)

	got, err := sessions.VerifySession(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got)

	_, err = sessions.VerifySession("not-a-token")
	require.Error(t, err)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	alice, _, err := svc.Register(ctx, RegisterParams{
		ScreenName: "alice_upd",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{
		ScreenName: "bob_upd",
		Visibility: domain.VisibilityPublic,
	})
	require.NoError(t, err)

	t.Run("applies partial changes", func(t *testing.T) {
		name := "Alice Renamed"
		displaysPast := true
		got, err := svc.Update(ctx, alice.ID, domain.UserUpdate{
			Name:         &name,
			DisplaysPast: &displaysPast,
		})
		require.NoError(t, err)
		require.Equal(t, "Alice Renamed", got.Name)
		require.True(t, got.DisplaysPast)
		require.Equal(t, "alice_upd", got.ScreenName)
	})

	t.Run("re-asserting own screen name is fine", func(t *testing.T) {
		screenName := "alice_upd"
		_, err := svc.Update(ctx, alice.ID, domain.UserUpdate{ScreenName: &screenName})
		require.NoError(t, err)
	})

	t.Run("rejects a taken screen name", func(t *testing.T) {
		screenName := "bob_upd"
		_, err := svc.Update(ctx, alice.ID, domain.UserUpdate{ScreenName: &screenName})
		require.ErrorIs(t, err, ErrScreenNameTaken)
	})

	t.Run("rejects an invalid screen name", func(t *testing.T) {
		screenName := "NOPE"
		_, err := svc.Update(ctx, alice.ID, domain.UserUpdate{ScreenName: &screenName})
		require.ErrorIs(t, err, ErrInvalidScreenName)
	})

	t.Run("rejects an invalid visibility", func(t *testing.T) {
		visibility := domain.Visibility("friends")
		_, err := svc.Update(ctx, alice.ID, domain.UserUpdate{Visibility: &visibility})
		require.ErrorIs(t, err, ErrInvalidVisibility)
	})
}
