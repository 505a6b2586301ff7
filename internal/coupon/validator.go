package coupon

import (
	"context"
	"fmt"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/metrics"
	"victus-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultRejectionReason = "Invalid coupon code"

// remoteValidator asks the backend, which owns coupon rules and usage limits.
type remoteValidator struct {
	api    backend.CouponAPI
	logger zerolog.Logger
}

// NewValidator creates a Validator backed by the coupon API.
func NewValidator(api backend.CouponAPI, logger zerolog.Logger) Validator {
	return &remoteValidator{
		api:    api,
		logger: logger.With().Str("component", "coupon-validator").Logger(),
	}
}

// Validate implements Validator.
func (v *remoteValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*model.CouponValidation, error) {
	code, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	result, err := v.api.ValidateCoupon(ctx, code, subtotal)
	if err != nil {
		metrics.CouponValidationsTotal.WithLabelValues("error").Inc()
		v.logger.Error().Err(err).Str("coupon_code", code).Msg("coupon validation request failed")
		return nil, fmt.Errorf("failed to validate coupon: %w", err)
	}

	if result.CouponCode == "" {
		result.CouponCode = code
	}

	if !result.Valid {
		if result.Error == "" {
			result.Error = defaultRejectionReason
		}
		metrics.CouponValidationsTotal.WithLabelValues("rejected").Inc()
		v.logger.Debug().
			Str("coupon_code", code).
			Str("reason", result.Error).
			Msg("coupon rejected")
		return result, nil
	}

	if result.FinalAmount != nil && result.FinalAmount.IsNegative() {
		zero := decimal.Zero
		result.FinalAmount = &zero
	}

	metrics.CouponValidationsTotal.WithLabelValues("accepted").Inc()
	v.logger.Debug().
		Str("coupon_code", code).
		Str("discount", result.Discount.StringFixed(2)).
		Msg("coupon accepted")

	return result, nil
}
