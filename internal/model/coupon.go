package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon discount types.
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

// AppliedCoupon is a validated coupon held for the duration of a checkout.
type AppliedCoupon struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discountType,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
}

// CouponValidation is the backend's verdict on a coupon for a cart total.
type CouponValidation struct {
	Valid          bool             `json:"valid"`
	CouponCode     string           `json:"coupon_code,omitempty"`
	Discount       decimal.Decimal  `json:"discount"`
	DiscountType   string           `json:"discount_type,omitempty"`
	OriginalAmount decimal.Decimal  `json:"original_amount"`
	FinalAmount    *decimal.Decimal `json:"final_amount,omitempty"`
	Error          string           `json:"error,omitempty"`
}

// Coupon is an admin-managed discount code.
type Coupon struct {
	ID                int64            `json:"couponId,omitempty"`
	Code              string           `json:"couponCode" validate:"required"`
	Description       string           `json:"description,omitempty"`
	DiscountType      string           `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue     decimal.Decimal  `json:"discountValue"`
	MinPurchaseAmount *decimal.Decimal `json:"minPurchaseAmount,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	UsageLimit        *int             `json:"usageLimit,omitempty"`
	ValidFrom         time.Time        `json:"validFrom" validate:"required"`
	ValidUntil        time.Time        `json:"validUntil" validate:"required,gtfield=ValidFrom"`
	IsActive          bool             `json:"isActive"`
}
