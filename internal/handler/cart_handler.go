package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"victus-storefront/internal/model"
	"victus-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles cart session HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type quantityRequest struct {
	Quantity json.Number `json:"quantity"`
}

type couponRequest struct {
	Code string `json:"code"`
}

// CreateSession handles POST /api/sessions requests.
func (h *CartHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	view := h.service.CreateSession(r.Context())
	writeJSON(w, http.StatusCreated, view)
}

// DeleteSession handles DELETE /api/sessions/{sessionID} requests.
func (h *CartHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCart handles GET /api/sessions/{sessionID}/cart requests.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearCart handles DELETE /api/sessions/{sessionID}/cart requests.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ClearCart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/sessions/{sessionID}/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item model.CartItem
	if err := decodeJSON(r, &item); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	res, err := h.service.AddItem(r.Context(), chi.URLParam(r, "sessionID"), item)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateItem handles PUT /api/sessions/{sessionID}/cart/items/{variantID}
// requests. A quantity below 1 removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	variantID, ok := int64Param(r, "variantID")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid variant ID", h.logger)
		return
	}

	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}
	quantity, err := strconv.Atoi(req.Quantity.String())
	if err != nil {
		writeError(w, r, model.ErrInvalidQuantity, h.logger)
		return
	}

	res, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "sessionID"), variantID, quantity)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RemoveItem handles DELETE /api/sessions/{sessionID}/cart/items/{variantID}
// requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	variantID, ok := int64Param(r, "variantID")
	if !ok {
		writeBadRequest(w, r, model.ErrCodeInvalidRequestInput, "invalid variant ID", h.logger)
		return
	}

	res, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "sessionID"), variantID)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ApplyCoupon handles POST /api/sessions/{sessionID}/cart/coupon requests.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	res, err := h.service.ApplyCoupon(r.Context(), chi.URLParam(r, "sessionID"), req.Code)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RemoveCoupon handles DELETE /api/sessions/{sessionID}/cart/coupon requests.
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveCoupon(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
