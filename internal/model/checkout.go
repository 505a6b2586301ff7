package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutForm holds the contact, shipping and payment fields of checkout.
// Every field is required; no format validation is applied.
type CheckoutForm struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	ZipCode    string `json:"zipCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	CardName   string `json:"cardName" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
}

// ShippingAddress joins the address fields into the backend's single string.
func (f CheckoutForm) ShippingAddress() string {
	return fmt.Sprintf("%s, %s, %s, %s", f.Address, f.City, f.ZipCode, f.Country)
}

// CheckoutRequest is a checkout submission.
type CheckoutRequest struct {
	Form           CheckoutForm `json:"form"`
	IdempotencyKey string       `json:"idempotencyKey,omitempty"`
}

// Checkout result statuses.
const (
	CheckoutStatusConfirmed = "confirmed"
	CheckoutStatusPlaced    = "placed"
)

// LineSyncFailure records a cart line that could not be pushed to the
// server-side cart.
type LineSyncFailure struct {
	VariantID int64  `json:"variantId"`
	Quantity  int    `json:"quantity"`
	Error     string `json:"error"`
}

// CheckoutResult is the outcome of a checkout submission.
type CheckoutResult struct {
	Status         string             `json:"status"`
	OrderID        int64              `json:"orderId"`
	TotalPrice     decimal.Decimal    `json:"totalPrice"`
	IdempotencyKey string             `json:"idempotencyKey"`
	UsedFallback   bool               `json:"usedFallback"`
	SyncWarnings   []LineSyncFailure  `json:"syncWarnings,omitempty"`
	Order          *OrderConfirmation `json:"order,omitempty"`
	Notification   Notification       `json:"notification"`
}

// Checkout attempt statuses as kept in the ledger.
const (
	AttemptStatusPending   = "pending"
	AttemptStatusPlaced    = "placed"
	AttemptStatusConfirmed = "confirmed"
	AttemptStatusFailed    = "failed"
)

// CheckoutAttempt is a ledger row keyed by idempotency key.
type CheckoutAttempt struct {
	IdempotencyKey string          `json:"idempotencyKey" db:"idempotency_key"`
	SessionID      string          `json:"sessionId" db:"session_id"`
	Email          string          `json:"email" db:"email"`
	Status         string          `json:"status" db:"status"`
	OrderID        *int64          `json:"orderId,omitempty" db:"order_id"`
	TotalPrice     decimal.Decimal `json:"totalPrice" db:"total_price"`
	UsedFallback   bool            `json:"usedFallback" db:"used_fallback"`
	Error          *string         `json:"error,omitempty" db:"error"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}
