package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses and the payment method used by storefront checkout.
const (
	OrderStatusPending   = "pending"
	PaymentStatusPending = "pending"
	PaymentMethodCard    = "Credit Card"
)

// OrderConfirmation is a fully hydrated backend order.
type OrderConfirmation struct {
	ID            int64           `json:"orderId"`
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	PhoneNum      string          `json:"phoneNum"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	OrderStatus   string          `json:"orderStatus"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	OrderDate     *time.Time      `json:"orderDate,omitempty"`
	Lines         []OrderLine     `json:"orderProducts"`
}

// OrderLine is one purchased variant within an order.
type OrderLine struct {
	ID              int64           `json:"orderProductId"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Variant         *Variant        `json:"variant,omitempty"`
}

// FromCartOrderRequest asks the backend to convert a cart into an order.
type FromCartOrderRequest struct {
	Address       string `json:"address"`
	PhoneNum      string `json:"phone_num"`
	PaymentMethod string `json:"payment_method"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	ClearCart     bool   `json:"clear_cart"`
}

// FromCartOrderResponse is the backend's reply to a cart conversion.
type FromCartOrderResponse struct {
	Message     string          `json:"message"`
	OrderID     int64           `json:"order_id"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	OrderStatus string          `json:"order_status"`
}

// DirectOrderRequest creates an order without a backend cart.
type DirectOrderRequest struct {
	Email         string          `json:"email"`
	Address       string          `json:"address"`
	PhoneNum      string          `json:"phoneNum"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	OrderStatus   string          `json:"orderStatus"`
	PaymentStatus string          `json:"paymentStatus"`
	PaymentMethod string          `json:"paymentMethod"`
}

// PlacedOrder is the minimal outcome of either order creation path.
type PlacedOrder struct {
	ID         int64           `json:"orderId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
