package handler

import (
	"net/http"
	"strconv"

	"victus-storefront/internal/model"
	"victus-storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.CatalogService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid page parameter", h.logger)
		return
	}

	size, ok := queryInt(r, "size")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid size parameter", h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := int64Param(r, "id")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Variants handles GET /api/products/{id}/variants requests.
func (h *ProductHandler) Variants(w http.ResponseWriter, r *http.Request) {
	productID, ok := int64Param(r, "id")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid product ID", h.logger)
		return
	}

	variants, err := h.service.ListVariants(r.Context(), productID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, variants)
}

// queryInt reads an optional integer query parameter; absent means 0.
func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
