package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/RanjithMathi/freshto-gateway/internal/checkout"
)

type CheckoutHandler struct {
	manager *checkout.Manager
}

func NewCheckoutHandler(manager *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{manager: manager}
}

type SelectAddressRequestDTO struct {
	AddressID int64 `json:"addressId"`
}

type SelectSlotRequestDTO struct {
	SlotID string `json:"slotId"`
}

type SelectPaymentRequestDTO struct {
	PaymentMethod       string `json:"paymentMethod"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	respondJSON(w, http.StatusOK, h.manager.Session(customerID))
}

// GET /api/v1/checkout/slots
func (h *CheckoutHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Slots())
}

// POST /api/v1/checkout/address
func (h *CheckoutHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req SelectAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.manager.SelectAddress(customerID, req.AddressID); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.manager.Session(customerID))
}

// POST /api/v1/checkout/slot
func (h *CheckoutHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req SelectSlotRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.manager.SelectSlot(customerID, req.SlotID); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.manager.Session(customerID))
}

// POST /api/v1/checkout/payment
func (h *CheckoutHandler) SelectPayment(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req SelectPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	method, err := checkout.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_payment_method", err.Error())
		return
	}

	if err := h.manager.SelectPayment(customerID, method); err != nil {
		handleCheckoutError(w, err)
		return
	}
	if req.SpecialInstructions != "" {
		if err := h.manager.SetInstructions(customerID, req.SpecialInstructions); err != nil {
			handleCheckoutError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, h.manager.Session(customerID))
}

// POST /api/v1/checkout/summary
func (h *CheckoutHandler) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	totals, err := h.manager.ReviewSummary(customerID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

// POST /api/v1/checkout/place
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	placed, err := h.manager.Place(r.Context(), customerID)
	if err != nil {
		log.Printf("order placement failed: customer=%d request=%s: %v",
			customerID, getRequestID(r.Context()), err)
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

// POST /api/v1/checkout/retry
func (h *CheckoutHandler) RetryOrder(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	placed, err := h.manager.Retry(r.Context(), customerID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

// POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.manager.Back(customerID); err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.manager.Session(customerID))
}

// DELETE /api/v1/checkout
func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	h.manager.Reset(customerID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleCheckoutError maps the state machine's sentinel errors, falling
// through to the backend taxonomy for placement failures.
func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.IllegalTransitionError):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrNoAddresses):
		respondError(w, http.StatusConflict, "no_addresses", err.Error())
	case errors.Is(err, checkout.ErrUnknownAddress):
		respondError(w, http.StatusNotFound, "unknown_address", err.Error())
	case errors.Is(err, checkout.ErrUnknownSlot):
		respondError(w, http.StatusNotFound, "unknown_slot", err.Error())
	case errors.Is(err, checkout.ErrSlotUnavailable):
		respondError(w, http.StatusConflict, "slot_unavailable", err.Error())
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		respondError(w, http.StatusBadRequest, "no_payment_method", err.Error())
	default:
		handleBackendError(w, err)
	}
}
