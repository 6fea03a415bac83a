package domain

import "time"

// LocationOthers is the class for every origin outside the configured
// internal networks. The internal class tag is deployment configuration.
const LocationOthers = "others"

// BucketKey identifies the calendar hour a check-in signal falls into,
// evaluated in the platform's single fixed time zone.
type BucketKey struct {
	Year  int
	Month int
	Day   int
	Hours int // 0-23
}

// Checkin is one aggregated presence bucket. At most one row exists per
// (UserID, BucketKey, LocationID); Count carries how many signals landed in
// that bucket.
type Checkin struct {
	ID         int64
	UserID     string
	Year       int
	Month      int
	Day        int
	Hours      int
	LocationID string
	Count      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Key returns the hour bucket this row belongs to.
func (c Checkin) Key() BucketKey {
	return BucketKey{Year: c.Year, Month: c.Month, Day: c.Day, Hours: c.Hours}
}

// CheckinFilter narrows bucket queries. Nil fields are unconstrained.
type CheckinFilter struct {
	Year       *int
	Month      *int
	Day        *int
	Hours      *int
	LocationID *string
}
