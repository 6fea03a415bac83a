package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
	"github.com/yokohama-dev/tsukuba/pkg/cryptox"
	"github.com/yokohama-dev/tsukuba/pkg/idx"
)

var (
	// ErrScreenNameTaken reports a screen-name collision with another user.
	ErrScreenNameTaken = errors.New("screen name already used")

	// ErrInvalidScreenName reports a screen name outside [a-z0-9_]{4,16}.
	ErrInvalidScreenName = errors.New("invalid screen name")

	// ErrInvalidVisibility reports an unknown visibility level.
	ErrInvalidVisibility = errors.New("invalid visibility")
)

var screenNameRe = regexp.MustCompile(`^[a-z0-9_]{4,16}$`)

// ValidScreenName reports whether s is an acceptable screen name.
func ValidScreenName(s string) bool {
	return screenNameRe.MatchString(s)
}

type UserService struct {
	Store store.Store
}

// RegisterParams carries everything needed to create an account.
type RegisterParams struct {
	ScreenName   string
	Name         string
	Message      string
	Visibility   domain.Visibility
	Listed       bool
	DisplaysPast bool
}

// Register creates a new account and mints its bearer credential. The
// returned credential has the form "<userID>:<secret>" and is shown exactly
// once; only the argon2id hash of the secret is stored.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, string, error) {
	if !ValidScreenName(p.ScreenName) {
		return domain.User{}, "", ErrInvalidScreenName
	}
	if !p.Visibility.Valid() {
		return domain.User{}, "", ErrInvalidVisibility
	}

	secret, err := cryptox.GenerateSecret()
	if err != nil {
		return domain.User{}, "", fmt.Errorf("generate credential: %w", err)
	}
	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hash credential: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		ScreenName:   p.ScreenName,
		Name:         p.Name,
		Message:      p.Message,
		Visibility:   p.Visibility,
		Listed:       p.Listed,
		DisplaysPast: p.DisplaysPast,
		HashedToken:  hash,
	}

	// The unique index on screen_name is the authority; a pre-check would
	// still race with a concurrent registration.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, "", ErrScreenNameTaken
		}
		return domain.User{}, "", fmt.Errorf("create user: %w", err)
	}

	created, err := s.Store.Users().GetUserByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("reload user: %w", err)
	}

	return created, Credential(user.ID, secret), nil
}

// Update applies a partial profile update and returns the fresh profile.
// Screen-name collisions against other users map to ErrScreenNameTaken.
func (s *UserService) Update(ctx context.Context, userID string, upd domain.UserUpdate) (domain.User, error) {
	if upd.ScreenName != nil && !ValidScreenName(*upd.ScreenName) {
		return domain.User{}, ErrInvalidScreenName
	}
	if upd.Visibility != nil && !upd.Visibility.Valid() {
		return domain.User{}, ErrInvalidVisibility
	}

	if upd.ScreenName != nil {
		existing, err := s.Store.Users().GetUserByScreenName(ctx, *upd.ScreenName)
		switch {
		case err == nil && existing.ID != userID:
			return domain.User{}, ErrScreenNameTaken
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return domain.User{}, fmt.Errorf("check screen name: %w", err)
		}
	}

	if err := s.Store.Users().UpdateUser(ctx, userID, upd); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrScreenNameTaken
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// RotateCredential replaces the user's credential secret and returns the new
// "<userID>:<secret>" form. Previously issued credentials stop verifying.
func (s *UserService) RotateCredential(ctx context.Context, userID string) (string, error) {
	secret, err := cryptox.GenerateSecret()
	if err != nil {
		return "", fmt.Errorf("generate credential: %w", err)
	}
	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}

	if err := s.Store.Users().UpdateTokenHash(ctx, userID, hash); err != nil {
		return "", fmt.Errorf("store credential: %w", err)
	}
	return Credential(userID, secret), nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// GetUserByScreenName fetches a user by their public screen name.
func (s *UserService) GetUserByScreenName(ctx context.Context, screenName string) (domain.User, error) {
	return s.Store.Users().GetUserByScreenName(ctx, screenName)
}

// ListUsers returns every account; visibility filtering happens above.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
