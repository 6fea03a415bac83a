package domain

import "time"

// Visibility controls who may read a profile and its check-in history.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityInternal Visibility = "internal"
)

// Valid reports whether v is one of the known visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInternal:
		return true
	}
	return false
}

type User struct {
	ID           string
	ScreenName   string // unique public lookup key, [a-z0-9_]{4,16}
	Name         string
	Message      string
	Visibility   Visibility
	Listed       bool   // include in the public directory
	DisplaysPast bool   // expose history beyond the current hour to viewers
	HashedToken  string // argon2id verifier for the bearer credential secret
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate carries a partial profile update. Nil fields are untouched.
type UserUpdate struct {
	ScreenName   *string
	Name         *string
	Message      *string
	Visibility   *Visibility
	Listed       *bool
	DisplaysPast *bool
}
