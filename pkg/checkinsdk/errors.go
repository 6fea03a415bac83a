package checkinsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response decoded into the service's error shape.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int

	// Message is the human-readable error text
	Message string

	// Type is the machine-readable subtype, e.g. USER_NOT_FOUND. May be empty.
	Type string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Type)
	}
	return e.Message
}

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Error,
			Type:       errResp.Type,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
