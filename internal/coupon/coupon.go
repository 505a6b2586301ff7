// Package coupon normalises coupon codes, validates them against the backend
// and prices coupon rules locally.
package coupon

import (
	"context"
	"strings"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Validator checks a coupon code against a cart subtotal.
type Validator interface {
	// Validate returns the verdict for code at subtotal. A rejected coupon
	// is a result with Valid=false and a reason; errors mean the verdict
	// could not be obtained at all.
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*model.CouponValidation, error)
}

// NormalizeCode trims and upper-cases a coupon code. A blank code is
// rejected without any network call.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", model.ErrEmptyCouponCode
	}
	return code, nil
}

// Applied converts an accepted validation into the session-local coupon.
// The final amount never drops below zero.
func Applied(v *model.CouponValidation, subtotal decimal.Decimal) model.AppliedCoupon {
	final := subtotal.Sub(v.Discount)
	if v.FinalAmount != nil {
		final = *v.FinalAmount
	}
	if final.IsNegative() {
		final = decimal.Zero
	}

	return model.AppliedCoupon{
		Code:           v.CouponCode,
		DiscountType:   v.DiscountType,
		DiscountAmount: subtotal.Sub(final),
		FinalAmount:    final,
	}
}
