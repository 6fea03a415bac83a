package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the wire shape for every error this service returns.
// Type carries a machine-readable subtype (e.g. "ID_ALREADY_USED") so
// clients can render a specific message rather than a generic failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, code int, message, errType string) {
	WriteJSON(w, code, ErrorResponse{Error: message, Type: errType})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses carrying credentials or per-viewer data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
