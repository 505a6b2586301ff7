package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/middleware"
	"victus-storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError maps err to a status code and writes the error body.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, resp := errorResponse(err)
	resp.CorrelationID = middleware.CorrelationID(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("code", resp.Error).
		Int("status", status).
		Str("correlation_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// writeBadRequest reports a malformed request that never reached a service.
func writeBadRequest(w http.ResponseWriter, r *http.Request, code, message string, logger zerolog.Logger) {
	writeError(w, r, model.NewDomainError(code, "Bad Request", message), logger)
}

func errorResponse(err error) (int, model.ErrorResponse) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		return domainStatus(derr.Code), model.ErrorResponse{
			Error:   derr.Code,
			Title:   derr.Title,
			Message: derr.Message,
			Fields:  derr.Fields,
		}
	}

	if errors.Is(err, backend.ErrNotFound) {
		return http.StatusNotFound, model.ErrorResponse{
			Error:   model.ErrCodeNotFound,
			Title:   model.ErrNotFound.Title,
			Message: model.ErrNotFound.Message,
		}
	}

	if errors.Is(err, backend.ErrUnavailable) || backend.StatusCode(err) != 0 {
		return http.StatusBadGateway, model.ErrorResponse{
			Error:   model.ErrCodeBackendUnavailable,
			Title:   "Service Unavailable",
			Message: "The store is temporarily unavailable. Please try again.",
		}
	}

	return http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Title:   "Error",
		Message: "internal server error",
	}
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingInformation,
		model.ErrCodeEmptyCart,
		model.ErrCodeEmptyCouponCode,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidRequestInput,
		model.ErrCodeInvalidCouponRule:
		return http.StatusBadRequest
	case model.ErrCodeSessionNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeCheckoutInProgress, model.ErrCodeOrderAwaitingConfirmation:
		return http.StatusConflict
	case model.ErrCodeCouponRejected:
		return http.StatusUnprocessableEntity
	case model.ErrCodeOrderFailed, model.ErrCodeBackendUnavailable:
		return http.StatusBadGateway
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return err
	}
	return nil
}

// int64Param parses a positive id from the chi route.
func int64Param(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
