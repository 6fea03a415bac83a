package service

import (
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
)

// Viewer describes who is looking: their authenticated user id (empty for
// anonymous) and whether their network origin classifies as internal.
type Viewer struct {
	UserID   string
	Internal bool
}

// IsOwner reports whether the viewer is the profile's authenticated owner.
func (v Viewer) IsOwner(u domain.User) bool {
	return v.UserID != "" && v.UserID == u.ID
}

// VisibleTo applies the profile access policy: public profiles are visible
// to everyone, internal profiles to internal-origin viewers, and the owner
// always sees their own profile.
func VisibleTo(u domain.User, v Viewer) bool {
	if v.IsOwner(u) {
		return true
	}
	switch u.Visibility {
	case domain.VisibilityPublic:
		return true
	case domain.VisibilityInternal:
		return v.Internal
	default:
		return false
	}
}

// FilterCheckins narrows a profile's bucket rows to what the viewer may
// see. Owners get full history. For everyone else, displaysPast=false
// restricts the result to the current hour's bucket.
func FilterCheckins(u domain.User, v Viewer, rows []domain.Checkin, current domain.BucketKey) []domain.Checkin {
	if v.IsOwner(u) || u.DisplaysPast {
		return rows
	}

	filtered := make([]domain.Checkin, 0, 2)
	for _, row := range rows {
		if row.Key() == current {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Presence status tags for the "current status" summary.
const (
	StatusInternal = "internal"
	StatusOthers   = "others"
	StatusUnknown  = "unknown"
)

// StatusStaleness is the window after which the latest bucket no longer
// counts as a live signal.
const StatusStaleness = time.Hour

// Summary aggregates a user's visible history for presentation.
type Summary struct {
	MonthHours int `json:"monthHours"` // distinct internal hour buckets this month
	MonthDays  int `json:"monthDays"`  // distinct days with internal presence this month
	YearHours  int `json:"yearHours"`
	YearDays   int `json:"yearDays"`

	Status    string     `json:"status"` // internal | others | unknown
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Summarize computes the aggregate view over bucket rows. Hour and day
// counts cover internal-class buckets with a positive count; the status
// reflects the most recently updated bucket unless it is stale.
func (s *CheckinService) Summarize(rows []domain.Checkin, now time.Time) Summary {
	local := now.In(s.Bucketer.Location())
	year, month := local.Year(), int(local.Month())
	internalID := s.Bucketer.InternalLocationID()

	summary := Summary{Status: StatusUnknown}

	type dateKey struct{ y, m, d int }
	monthDays := make(map[dateKey]struct{})
	yearDays := make(map[dateKey]struct{})

	var latest *domain.Checkin
	for i, row := range rows {
		if latest == nil || row.UpdatedAt.After(latest.UpdatedAt) {
			latest = &rows[i]
		}

		if row.Count <= 0 || row.LocationID != internalID {
			continue
		}
		if row.Year != year {
			continue
		}

		key := dateKey{row.Year, row.Month, row.Day}
		summary.YearHours++
		yearDays[key] = struct{}{}

		if row.Month == month {
			summary.MonthHours++
			monthDays[key] = struct{}{}
		}
	}
	summary.MonthDays = len(monthDays)
	summary.YearDays = len(yearDays)

	if latest != nil {
		updatedAt := latest.UpdatedAt
		summary.UpdatedAt = &updatedAt
		if now.Sub(updatedAt) <= StatusStaleness {
			if latest.LocationID == internalID {
				summary.Status = StatusInternal
			} else {
				summary.Status = StatusOthers
			}
		}
	}

	return summary
}

// StatusOf derives just the presence status from the most recent bucket.
// Used for the directory listing where full history is not loaded.
func (s *CheckinService) StatusOf(latest domain.Checkin, ok bool, now time.Time) string {
	if !ok || now.Sub(latest.UpdatedAt) > StatusStaleness {
		return StatusUnknown
	}
	if latest.LocationID == s.Bucketer.InternalLocationID() {
		return StatusInternal
	}
	return StatusOthers
}
