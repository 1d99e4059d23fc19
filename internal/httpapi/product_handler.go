package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RanjithMathi/freshto-gateway/internal/catalog"
)

type ProductHandler struct {
	catalog catalog.Service
}

func NewProductHandler(svc catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: svc}
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.All(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/available
func (h *ProductHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Available(r.Context())
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.ByID(r.Context(), productID)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// GET /api/v1/products/category/{category}
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "invalid_category", "category is required")
		return
	}

	products, err := h.catalog.ByCategory(r.Context(), category)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// PATCH /api/v1/products/{product_id}/stock?quantity=N
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a non-negative integer")
		return
	}

	if err := h.catalog.UpdateStock(r.Context(), productID, quantity); err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "stock updated"})
}

// GET /api/v1/products/sale/{sale_type}
func (h *ProductHandler) ListBySaleType(w http.ResponseWriter, r *http.Request) {
	saleType := chi.URLParam(r, "sale_type")
	if saleType == "" {
		respondError(w, http.StatusBadRequest, "invalid_sale_type", "sale_type is required")
		return
	}

	products, err := h.catalog.BySaleType(r.Context(), saleType)
	if err != nil {
		handleBackendError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
