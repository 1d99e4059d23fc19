package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RanjithMathi/freshto-gateway/internal/cart"
	"github.com/RanjithMathi/freshto-gateway/internal/catalog"
	"github.com/RanjithMathi/freshto-gateway/internal/money"
)

type CartHandler struct {
	cart    *cart.Store
	catalog catalog.Service
}

func NewCartHandler(cartStore *cart.Store, svc catalog.Service) *CartHandler {
	return &CartHandler{cart: cartStore, catalog: svc}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items         []cart.Line  `json:"items"`
	TotalItems    int          `json:"totalItems"`
	TotalQuantity int          `json:"totalQuantity"`
	Subtotal      money.Paise  `json:"subtotal"`
	Notice        *cart.Notice `json:"notice,omitempty"`
}

func (h *CartHandler) snapshot(customerID int64, notice *cart.Notice) CartResponseDTO {
	return CartResponseDTO{
		Items:         h.cart.Lines(customerID),
		TotalItems:    h.cart.TotalLineCount(customerID),
		TotalQuantity: h.cart.TotalQuantity(customerID),
		Subtotal:      h.cart.Subtotal(customerID),
		Notice:        notice,
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	respondJSON(w, http.StatusOK, h.snapshot(customerID, nil))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The cart stores a price snapshot, so the product is looked up once
	// at add time.
	product, err := h.catalog.ByID(r.Context(), req.ProductID)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if !product.Available {
		respondError(w, http.StatusConflict, "product_unavailable", "product is not available")
		return
	}

	notice, err := h.cart.AddItem(customerID, *product, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item")
		return
	}

	respondJSON(w, http.StatusCreated, h.snapshot(customerID, &notice))
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero and below removes the line outright.
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	notice, err := h.cart.SetQuantity(customerID, productID, req.Quantity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update quantity")
		return
	}

	// A plain quantity change produces no notice.
	var n *cart.Notice
	if notice.Message != "" {
		n = &notice
	}
	respondJSON(w, http.StatusOK, h.snapshot(customerID, n))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	notice, err := h.cart.RemoveItem(customerID, productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove item")
		return
	}

	var n *cart.Notice
	if notice.Message != "" {
		n = &notice
	}
	respondJSON(w, http.StatusOK, h.snapshot(customerID, n))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	notice := h.cart.Clear(customerID)
	respondJSON(w, http.StatusOK, h.snapshot(customerID, &notice))
}
