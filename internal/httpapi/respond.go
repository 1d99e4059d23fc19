package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleBackendError converts the backend error taxonomy to HTTP status
// codes at the edge. Domain handlers map their own sentinel errors first
// and fall through to this for everything that crossed the wire.
func handleBackendError(w http.ResponseWriter, err error) {
	var vErr *backend.ValidationError
	if errors.As(err, &vErr) {
		respondError(w, http.StatusBadRequest, "validation_failed", vErr.Error())
		return
	}
	if errors.Is(err, backend.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	var aErr *backend.AuthError
	if errors.As(err, &aErr) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "session expired, log in again")
		return
	}
	var nErr *backend.NetworkError
	if errors.As(err, &nErr) {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", nErr.Error())
		return
	}
	var sErr *backend.ServerError
	if errors.As(err, &sErr) {
		respondError(w, http.StatusBadGateway, "backend_error", sErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
