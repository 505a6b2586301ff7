package coupon

import (
	"fmt"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rule is the pricing part of a coupon.
type Rule struct {
	DiscountType string
	Value        decimal.Decimal
	MinPurchase  decimal.Decimal
	MaxDiscount  decimal.Decimal // zero means uncapped
}

// Quote is the outcome of applying a rule to a subtotal.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Final    decimal.Decimal `json:"finalAmount"`
}

// RuleFromCoupon extracts the pricing rule of c.
func RuleFromCoupon(c model.Coupon) Rule {
	r := Rule{
		DiscountType: c.DiscountType,
		Value:        c.DiscountValue,
	}
	if c.MinPurchaseAmount != nil {
		r.MinPurchase = *c.MinPurchaseAmount
	}
	if c.MaxDiscountAmount != nil {
		r.MaxDiscount = *c.MaxDiscountAmount
	}
	return r
}

// Validate reports whether the rule can be priced.
func (r Rule) Validate() error {
	switch r.DiscountType {
	case model.DiscountTypePercentage:
		if r.Value.GreaterThan(hundred) {
			return model.InvalidCouponRule("percentage discount cannot exceed 100")
		}
	case model.DiscountTypeFixed:
	default:
		return model.InvalidCouponRule(fmt.Sprintf("unknown discount type %q", r.DiscountType))
	}

	if !r.Value.IsPositive() {
		return model.InvalidCouponRule("discount value must be positive")
	}
	if r.MinPurchase.IsNegative() {
		return model.InvalidCouponRule("minimum purchase cannot be negative")
	}
	if r.MaxDiscount.IsNegative() {
		return model.InvalidCouponRule("maximum discount cannot be negative")
	}
	return nil
}

// Apply prices the rule against subtotal. The final amount is never
// negative. A subtotal below the minimum purchase is rejected.
func (r Rule) Apply(subtotal decimal.Decimal) (Quote, error) {
	if err := r.Validate(); err != nil {
		return Quote{}, err
	}

	if subtotal.LessThan(r.MinPurchase) {
		return Quote{}, model.CouponRejected(
			fmt.Sprintf("Minimum purchase of $%s required", r.MinPurchase.StringFixed(2)),
		)
	}

	var discount decimal.Decimal
	switch r.DiscountType {
	case model.DiscountTypePercentage:
		discount = subtotal.Mul(r.Value).Div(hundred).Round(2)
		if r.MaxDiscount.IsPositive() && discount.GreaterThan(r.MaxDiscount) {
			discount = r.MaxDiscount
		}
	case model.DiscountTypeFixed:
		discount = decimal.Min(r.Value, subtotal)
	}

	final := subtotal.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Quote{
		Subtotal: subtotal,
		Discount: subtotal.Sub(final),
		Final:    final,
	}, nil
}
