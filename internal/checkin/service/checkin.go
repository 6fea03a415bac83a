package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/internal/checkin/store"
)

// ErrRateLimited reports that a user's hour bucket already holds the maximum
// accepted signal count, summed across all location classes.
var ErrRateLimited = errors.New("rate limit exceeded")

// DefaultRateLimit caps accepted signals per user per hour.
const DefaultRateLimit = 100

// CheckinService is the upsert engine: it records one presence signal
// idempotently within its hour bucket.
type CheckinService struct {
	Store    store.Store
	Bucketer *Bucketer

	// RateLimit is the maximum total count per (user, hour). Zero means
	// DefaultRateLimit.
	RateLimit int
}

// Limit returns the effective per-hour rate limit.
func (s *CheckinService) Limit() int {
	if s.RateLimit > 0 {
		return s.RateLimit
	}
	return DefaultRateLimit
}

// Record registers one presence signal for the user at the given origin and
// returns the resulting bucket count. The caller's identity is trusted; it
// must already be verified.
//
// The fetch/decide/write sequence runs inside one transaction so the rate
// limit check and the write cannot interleave with another signal for the
// same user. The increment itself is a single atomic statement, and the
// unique bucket index turns a racing insert into a retryable conflict.
func (s *CheckinService) Record(ctx context.Context, userID, originAddr string) (int, error) {
	key := s.Bucketer.KeyAt(time.Now())
	locationID := s.Bucketer.Classify(originAddr)

	var count int
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		rows, err := tx.Checkins().ListCheckinsForHour(ctx, userID, key)
		if err != nil {
			return fmt.Errorf("fetch hour buckets: %w", err)
		}

		total := 0
		for _, row := range rows {
			total += row.Count
		}
		if total >= s.Limit() {
			return ErrRateLimited
		}

		for _, row := range rows {
			if row.LocationID == locationID {
				count, err = tx.Checkins().IncrementCheckin(ctx, row.ID)
				return err
			}
		}

		inserted, err := tx.Checkins().InsertCheckin(ctx, userID, key, locationID)
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost an insert race outside this tx's snapshot; fall back to
			// incrementing the row that won.
			return s.incrementExisting(ctx, tx, userID, key, locationID, &count)
		}
		if err != nil {
			return fmt.Errorf("insert bucket: %w", err)
		}
		count = inserted.Count
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *CheckinService) incrementExisting(
	ctx context.Context,
	tx store.Tx,
	userID string,
	key domain.BucketKey,
	locationID string,
	count *int,
) error {
	rows, err := tx.Checkins().ListCheckinsForHour(ctx, userID, key)
	if err != nil {
		return fmt.Errorf("refetch hour buckets: %w", err)
	}
	for _, row := range rows {
		if row.LocationID == locationID {
			*count, err = tx.Checkins().IncrementCheckin(ctx, row.ID)
			return err
		}
	}
	return store.ErrNotFound
}

// History returns all of a user's bucket rows.
func (s *CheckinService) History(ctx context.Context, userID string) ([]domain.Checkin, error) {
	return s.Store.Checkins().ListCheckins(ctx, userID, domain.CheckinFilter{})
}

// Latest returns the most recently updated bucket, or ok=false when the
// user has no history.
func (s *CheckinService) Latest(ctx context.Context, userID string) (domain.Checkin, bool, error) {
	latest, err := s.Store.Checkins().LatestCheckin(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Checkin{}, false, nil
	}
	if err != nil {
		return domain.Checkin{}, false, err
	}
	return latest, true, nil
}
