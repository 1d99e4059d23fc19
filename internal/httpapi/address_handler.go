package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RanjithMathi/freshto-gateway/internal/address"
)

type AddressHandler struct {
	store *address.Store
}

func NewAddressHandler(store *address.Store) *AddressHandler {
	return &AddressHandler{store: store}
}

type AddressListResponseDTO struct {
	Addresses []address.Address `json:"addresses"`
	DefaultID int64             `json:"defaultId,omitempty"`
}

// GET /api/v1/addresses
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	addresses, err := h.store.Load(r.Context(), customerID)
	if err != nil {
		handleBackendError(w, err)
		return
	}

	resp := AddressListResponseDTO{Addresses: addresses}
	if def, ok := h.store.Default(customerID); ok {
		resp.DefaultID = def.ID
	}
	respondJSON(w, http.StatusOK, resp)
}

// GET /api/v1/addresses/default
func (h *AddressHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if _, err := h.store.Load(r.Context(), customerID); err != nil {
		handleBackendError(w, err)
		return
	}

	def, ok := h.store.Default(customerID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no default address")
		return
	}
	respondJSON(w, http.StatusOK, def)
}

// GET /api/v1/addresses/type/{type}
func (h *AddressHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	addrType := address.Type(chi.URLParam(r, "type"))
	switch addrType {
	case address.TypeHome, address.TypeWork, address.TypeOther:
	default:
		respondError(w, http.StatusBadRequest, "invalid_type", "type must be HOME, WORK or OTHER")
		return
	}

	addresses, err := h.store.ByType(r.Context(), customerID, addrType)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, addresses)
}

// POST /api/v1/addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var draft address.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	created, err := h.store.Add(r.Context(), customerID, draft)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// PUT /api/v1/addresses/{address_id}
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	addressID, err := strconv.ParseInt(chi.URLParam(r, "address_id"), 10, 64)
	if err != nil || addressID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id must be a positive integer")
		return
	}

	var draft address.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := h.store.Update(r.Context(), customerID, addressID, draft)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/addresses/{address_id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	addressID, err := strconv.ParseInt(chi.URLParam(r, "address_id"), 10, 64)
	if err != nil || addressID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id must be a positive integer")
		return
	}

	if err := h.store.Remove(r.Context(), customerID, addressID); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PATCH /api/v1/addresses/{address_id}/default
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	addressID, err := strconv.ParseInt(chi.URLParam(r, "address_id"), 10, 64)
	if err != nil || addressID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_address_id", "address_id must be a positive integer")
		return
	}

	if err := h.store.SetDefault(r.Context(), customerID, addressID); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "default updated"})
}
