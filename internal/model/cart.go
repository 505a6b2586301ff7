package model

import "github.com/shopspring/decimal"

// CartItem is what a shopper adds to the cart: a line without quantity.
type CartItem struct {
	VariantID      int64           `json:"variantId" validate:"required,gt=0"`
	ProductID      int64           `json:"productId" validate:"required,gt=0"`
	Name           string          `json:"name" validate:"required"`
	Category       string          `json:"category"`
	VariantDetails string          `json:"variantDetails,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Image          string          `json:"image"`
}

// CartLine is one variant-and-quantity pairing in the local cart.
type CartLine struct {
	CartItem
	Quantity int `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartView is a read-only snapshot of a cart with its derived totals.
type CartView struct {
	SessionID     string          `json:"sessionId,omitempty"`
	Lines         []CartLine      `json:"lines"`
	TotalItems    int             `json:"totalItems"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	AppliedCoupon *AppliedCoupon  `json:"appliedCoupon,omitempty"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
}

// Notification is a transient user-facing message about an action.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BackendCart is the server-side cart record.
type BackendCart struct {
	ID         int64           `json:"cartId"`
	Email      string          `json:"email"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsActive   bool            `json:"isActive"`
}

// CreateCartRequest creates a server-side cart for a customer email.
type CreateCartRequest struct {
	Email      string          `json:"email"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsActive   bool            `json:"isActive"`
}

// CartProductRequest pushes one line into a server-side cart.
type CartProductRequest struct {
	VariantID int64 `json:"variant_id"`
	CartID    int64 `json:"cart_id"`
	Quantity  int   `json:"quantity"`
}

// CartTotal is the result of a server-side total recalculation.
type CartTotal struct {
	CartID     int64           `json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
}

// CartMutation is the cart after a change plus the message to show for it.
type CartMutation struct {
	Cart         CartView      `json:"cart"`
	Notification *Notification `json:"notification,omitempty"`
}

// CouponOutcome is the cart after a coupon was applied.
type CouponOutcome struct {
	Cart         CartView     `json:"cart"`
	Notification Notification `json:"notification"`
}
