package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/yokohama-dev/tsukuba/pkg/slogx"
)

// CredentialVerifier turns an opaque bearer credential into a verified user
// identity. Implemented by the session service.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, credential string) (userID string, err error)
}

// SessionVerifier turns a session cookie value into a verified user identity.
type SessionVerifier interface {
	VerifySession(token string) (userID string, err error)
}

// AuthnBearer requires a valid opaque credential in the Authorization header.
// Both "Authorization: <credential>" and "Authorization: Bearer <credential>"
// forms are accepted.
func AuthnBearer(v CredentialVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerCredential(r)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "Token not found", "")
				return
			}

			userID, err := v.VerifyCredential(ctx, raw)
			if err != nil {
				log.Warn("credential verify failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "Invalid token", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(ctx, userID)))
		})
	}
}

// AuthnSession requires a valid session cookie.
func AuthnSession(v SessionVerifier) Middleware {
	return authnSession(v, true)
}

// AuthnSessionOptional resolves the session cookie when present and valid,
// and otherwise lets the request through anonymously.
func AuthnSessionOptional(v SessionVerifier) Middleware {
	return authnSession(v, false)
}

func authnSession(v SessionVerifier, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				if required {
					WriteError(w, http.StatusUnauthorized, "Token not found", "")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			userID, err := v.VerifySession(cookie.Value)
			if err != nil {
				if required {
					slogx.FromContext(ctx).Warn("session verify failed", "err", err)
					WriteError(w, http.StatusUnauthorized, "Invalid token", "")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(ctx, userID)))
		})
	}
}

// BearerCredential extracts the opaque credential from the Authorization
// header, stripping an optional "Bearer " scheme prefix. Returns "" when the
// header is absent.
func BearerCredential(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(authz)
}
