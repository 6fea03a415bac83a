package store

import (
	"context"
	"errors"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Checkins() Checkins

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back; otherwise it
	// is committed. This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByScreenName is the public lookup path.
	GetUserByScreenName(ctx context.Context, screenName string) (domain.User, error)

	// ListUsers returns all users ordered by creation date (oldest first).
	// Visibility filtering is the service layer's concern.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists on a screen-name collision.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies a partial profile update and bumps updated_at.
	// Returns ErrAlreadyExists when the new screen name is taken.
	UpdateUser(ctx context.Context, userID string, upd domain.UserUpdate) error

	// UpdateTokenHash rotates the credential verifier and bumps updated_at.
	UpdateTokenHash(ctx context.Context, userID string, newHash string) error
}

type Checkins interface {
	// ListCheckins returns a user's bucket rows matching the filter,
	// ordered by (year, month, day, hours, location_id).
	ListCheckins(ctx context.Context, userID string, f domain.CheckinFilter) ([]domain.Checkin, error)

	// ListCheckinsForHour returns all location rows for one hour bucket.
	ListCheckinsForHour(ctx context.Context, userID string, key domain.BucketKey) ([]domain.Checkin, error)

	// LatestCheckin returns the most recently updated bucket across a
	// user's whole history, or ErrNotFound when none exists.
	LatestCheckin(ctx context.Context, userID string) (domain.Checkin, error)

	// InsertCheckin creates a bucket row with count=1. Returns
	// ErrAlreadyExists when the composite bucket identity already has a row.
	InsertCheckin(ctx context.Context, userID string, key domain.BucketKey, locationID string) (domain.Checkin, error)

	// IncrementCheckin atomically bumps a bucket's count by one and returns
	// the new count.
	IncrementCheckin(ctx context.Context, id int64) (int, error)
}
