package checkinsdk

import "time"

// Error subtypes returned in ErrorResponse.Type.
const (
	ErrorTypeUserNotFound          = "USER_NOT_FOUND"
	ErrorTypeScreenNameAlreadyUsed = "ID_ALREADY_USED"
	ErrorTypeInvalidScreenName     = "INVALID_SCREEN_NAME"
	ErrorTypeForbidden             = "FORBIDDEN"
)

// ErrorResponse mirrors the service's error wire shape.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// User is the public profile representation.
type User struct {
	ID           string `json:"id"`
	ScreenName   string `json:"screenName"`
	Name         string `json:"name"`
	Message      string `json:"message"`
	Visibility   string `json:"visibility"` // public | private | internal
	Listed       bool   `json:"listed"`
	DisplaysPast bool   `json:"displaysPast"`
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	ScreenName   string `json:"screenName"`
	Name         string `json:"name"`
	Message      string `json:"message"`
	Visibility   string `json:"visibility"`
	Listed       bool   `json:"listed"`
	DisplaysPast bool   `json:"displaysPast"`
}

// RegisterResponse returns the created profile together with the bearer
// credential. The credential is shown exactly once.
type RegisterResponse struct {
	User

	IDToken string `json:"idToken"`
}

// UpdateUserRequest is a partial profile update; nil fields are untouched.
type UpdateUserRequest struct {
	ScreenName   *string `json:"screenName,omitempty"`
	Name         *string `json:"name,omitempty"`
	Message      *string `json:"message,omitempty"`
	Visibility   *string `json:"visibility,omitempty"`
	Listed       *bool   `json:"listed,omitempty"`
	DisplaysPast *bool   `json:"displaysPast,omitempty"`
}

// Checkin is one serialized hour bucket.
type Checkin struct {
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Day        int       `json:"day"`
	Hours      int       `json:"hours"`
	Count      int       `json:"count"`
	LocationID string    `json:"locationId"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CheckinResponse is the result of recording one presence signal.
type CheckinResponse struct {
	Count int `json:"count"`
}

// Summary aggregates visible history for presentation.
type Summary struct {
	MonthHours int        `json:"monthHours"`
	MonthDays  int        `json:"monthDays"`
	YearHours  int        `json:"yearHours"`
	YearDays   int        `json:"yearDays"`
	Status     string     `json:"status"` // internal | others | unknown
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Profile is a user together with their visible check-in history.
type Profile struct {
	User

	Checkins []Checkin `json:"checkins"`
	Summary  Summary   `json:"summary"`
}

// DirectoryEntry is one row of the public user directory.
type DirectoryEntry struct {
	User

	Status string `json:"status"` // internal | others | unknown
}

// HealthChecks reports per-dependency health.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
