package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
)

const checkinColumns = `id, user_id, year, month, day, hours, location_id, count, created_at, updated_at`

type checkinsRepo struct {
	db dbtx
}

func (r *checkinsRepo) ListCheckins(ctx context.Context, userID string, f domain.CheckinFilter) ([]domain.Checkin, error) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}

	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}
	if f.Month != nil {
		conditions = append(conditions, "month = ?")
		args = append(args, *f.Month)
	}
	if f.Day != nil {
		conditions = append(conditions, "day = ?")
		args = append(args, *f.Day)
	}
	if f.Hours != nil {
		conditions = append(conditions, "hours = ?")
		args = append(args, *f.Hours)
	}
	if f.LocationID != nil {
		conditions = append(conditions, "location_id = ?")
		args = append(args, *f.LocationID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+checkinColumns+` FROM checkin
		 WHERE `+strings.Join(conditions, " AND ")+`
		 ORDER BY year, month, day, hours, location_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []domain.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

func (r *checkinsRepo) ListCheckinsForHour(ctx context.Context, userID string, key domain.BucketKey) ([]domain.Checkin, error) {
	return r.ListCheckins(ctx, userID, domain.CheckinFilter{
		Year:  &key.Year,
		Month: &key.Month,
		Day:   &key.Day,
		Hours: &key.Hours,
	})
}

func (r *checkinsRepo) LatestCheckin(ctx context.Context, userID string) (domain.Checkin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+checkinColumns+` FROM checkin
		 WHERE user_id = ?
		 ORDER BY updated_at DESC, id DESC
		 LIMIT 1`, userID)
	c, err := scanCheckin(row)
	if err != nil {
		return domain.Checkin{}, mapNotFound(err)
	}
	return c, nil
}

func (r *checkinsRepo) InsertCheckin(ctx context.Context, userID string, key domain.BucketKey, locationID string) (domain.Checkin, error) {
	now := time.Now().UTC()

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO checkin (user_id, year, month, day, hours, location_id, count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
		 RETURNING id`,
		userID, key.Year, key.Month, key.Day, key.Hours, locationID, now, now)

	var id int64
	if err := row.Scan(&id); err != nil {
		return domain.Checkin{}, mapConstraint(err)
	}

	return domain.Checkin{
		ID:         id,
		UserID:     userID,
		Year:       key.Year,
		Month:      key.Month,
		Day:        key.Day,
		Hours:      key.Hours,
		LocationID: locationID,
		Count:      1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (r *checkinsRepo) IncrementCheckin(ctx context.Context, id int64) (int, error) {
	// Single-statement increment so two racing signals can never both read
	// count=N and both write N+1.
	row := r.db.QueryRowContext(ctx,
		`UPDATE checkin SET count = count + 1, updated_at = ? WHERE id = ? RETURNING count`,
		time.Now().UTC(), id)

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, mapNotFound(err)
	}
	return count, nil
}

func scanCheckin(row rowScanner) (domain.Checkin, error) {
	var c domain.Checkin
	err := row.Scan(
		&c.ID, &c.UserID, &c.Year, &c.Month, &c.Day, &c.Hours,
		&c.LocationID, &c.Count, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Checkin{}, err
	}
	return c, nil
}
