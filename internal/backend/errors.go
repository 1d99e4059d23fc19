package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound maps a 404 from the backend. Callers that treat "no data yet"
// as an empty collection absorb it instead of surfacing a failure.
var ErrNotFound = errors.New("resource not found")

// ValidationError is raised by client-side form checks before any request
// is made. It never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthError maps a 401/403 response. The session is cleared when one is seen.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// NetworkError means no response was received at all (connection refused,
// DNS failure, client-side timeout). Retry is user-initiated, never automatic.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError covers 5xx and any other unexpected status, carrying the
// message from the payload when the backend provides one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
}

// messageFromPayload digs a human-readable message out of an error body.
func messageFromPayload(data []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(data) > 0 && len(data) <= 200 {
		var raw string
		if err := json.Unmarshal(data, &raw); err == nil && raw != "" {
			return raw
		}
	}
	return http.StatusText(statusCode)
}
