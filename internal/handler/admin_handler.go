package handler

import (
	"net/http"

	"victus-storefront/internal/model"
	"victus-storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AdminEmailHeader names the admin recorded in the activity log.
const AdminEmailHeader = "X-Admin-Email"

// AdminHandler handles back-office HTTP requests.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

type couponPreviewRequest struct {
	Coupon   model.Coupon    `json:"coupon"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Dashboard handles GET /api/admin/dashboard requests.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Dashboard(r.Context()))
}

// CreateCoupon handles POST /api/admin/coupons requests.
func (h *AdminHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var c model.Coupon
	if err := decodeJSON(r, &c); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	created, err := h.service.CreateCoupon(r.Context(), r.Header.Get(AdminEmailHeader), c)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// PreviewCoupon handles POST /api/admin/coupons/preview requests.
func (h *AdminHandler) PreviewCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponPreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	quote, err := h.service.PreviewCoupon(r.Context(), req.Coupon, req.Subtotal)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
