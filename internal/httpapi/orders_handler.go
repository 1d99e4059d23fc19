package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
	"github.com/RanjithMathi/freshto-gateway/internal/order"
)

type OrdersHandler struct {
	orders order.Service
	store  *order.Store
}

func NewOrdersHandler(svc order.Service, store *order.Store) *OrdersHandler {
	return &OrdersHandler{orders: svc, store: store}
}

// GET /api/v1/orders
//
// The backend is the source of truth; each list refreshes the local
// store so status updates arriving via the consumer merge with it.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ByCustomer(r.Context(), customerID)
	if errors.Is(err, backend.ErrNotFound) {
		orders = nil
	} else if err != nil {
		handleBackendError(w, err)
		return
	}

	h.store.ReplaceAll(customerID, orders)
	respondJSON(w, http.StatusOK, h.store.ByCustomer(customerID))
}

// GET /api/v1/orders/status/{status}
func (h *OrdersHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	status, err := order.ParseStatus(chi.URLParam(r, "status"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	orders, err := h.orders.ByStatus(r.Context(), status)
	if errors.Is(err, backend.ErrNotFound) {
		orders = nil
	} else if err != nil {
		handleBackendError(w, err)
		return
	}

	filtered := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.CustomerID == customerID {
			filtered = append(filtered, o)
		}
	}
	respondJSON(w, http.StatusOK, filtered)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	customerID := customerFromContext(r.Context())
	if customerID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	o, err := h.orders.ByID(r.Context(), orderID)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	if o.CustomerID != customerID {
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}

	h.store.Record(o)
	respondJSON(w, http.StatusOK, o)
}
