package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/RanjithMathi/freshto-gateway/internal/auth"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

type SendOTPRequestDTO struct {
	PhoneNumber string `json:"phoneNumber"`
}

type VerifyOTPRequestDTO struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp"`
}

// POST /api/v1/auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.auth.SendOTP(r.Context(), req.PhoneNumber); err != nil {
		handleBackendError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP sent",
	})
}

// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.auth.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	// A wrong code is a normal outcome, not an HTTP error.
	respondJSON(w, http.StatusOK, result)
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "not logged in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
