package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/cryptox"
	"github.com/yokohama-dev/tsukuba/pkg/jwtx"
)

// ErrInvalidCredential reports a malformed, unknown or non-matching bearer
// credential.
var ErrInvalidCredential = errors.New("invalid credential")

// Credential assembles the opaque bearer form handed to clients.
func Credential(userID, secret string) string {
	return userID + ":" + secret
}

// SessionService verifies opaque bearer credentials against the store and
// exchanges them for signed session cookies.
type SessionService struct {
	Store  store.Store
	Signer *jwtx.EdDSASigner

	// SessionTTL defaults to jwtx.DefaultSessionTTL when zero.
	SessionTTL time.Duration
}

// VerifyCredential resolves a "<userID>:<secret>" bearer credential to a
// verified user id. Every failure collapses into ErrInvalidCredential so
// callers cannot distinguish unknown users from wrong secrets.
func (s *SessionService) VerifyCredential(ctx context.Context, credential string) (string, error) {
	userID, secret, ok := strings.Cut(credential, ":")
	if !ok || userID == "" || secret == "" {
		return "", ErrInvalidCredential
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredential
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifySecret(secret, user.HashedToken); err != nil {
		return "", ErrInvalidCredential
	}
	return user.ID, nil
}

// IssueSession mints a signed session token for the cookie.
func (s *SessionService) IssueSession(user domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(user.ID, user.ScreenName, s.Signer.Issuer(), ttl, time.Now().UTC())
	return s.Signer.Sign(claims)
}

// VerifySession resolves a session cookie value to a verified user id.
func (s *SessionService) VerifySession(token string) (string, error) {
	claims, err := s.Signer.Verify(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("session token missing subject")
	}
	return claims.Subject, nil
}
