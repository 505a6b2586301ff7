package handler

import (
	"net/http"
	"strings"

	"victus-storefront/internal/model"
	"victus-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// IdempotencyKeyHeader may carry the checkout key instead of the body.
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles checkout submissions.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /api/sessions/{sessionID}/checkout requests. A
// confirmed order answers 201; an order placed but not yet confirmed
// answers 202.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, r, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		req.IdempotencyKey = r.Header.Get(IdempotencyKeyHeader)
	}

	res, err := h.service.Checkout(r.Context(), chi.URLParam(r, "sessionID"), req)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.Header().Set(IdempotencyKeyHeader, res.IdempotencyKey)

	status := http.StatusCreated
	if res.Status == model.CheckoutStatusPlaced {
		status = http.StatusAccepted
	}
	writeJSON(w, status, res)
}
