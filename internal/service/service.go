package service

import (
	"context"

	"victus-storefront/internal/coupon"
	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// CartService manages shopper cart sessions.
type CartService interface {
	// CreateSession starts an empty cart session.
	CreateSession(ctx context.Context) model.CartView

	// GetCart returns the current cart of a session.
	GetCart(ctx context.Context, sessionID string) (*model.CartView, error)

	// DeleteSession drops a session and its cart.
	DeleteSession(ctx context.Context, sessionID string) error

	// AddItem adds one unit of a variant to the cart.
	AddItem(ctx context.Context, sessionID string, item model.CartItem) (*model.CartMutation, error)

	// UpdateQuantity sets the quantity of a line; below 1 removes it.
	UpdateQuantity(ctx context.Context, sessionID string, variantID int64, quantity int) (*model.CartMutation, error)

	// RemoveItem removes a line from the cart.
	RemoveItem(ctx context.Context, sessionID string, variantID int64) (*model.CartMutation, error)

	// ClearCart empties the cart.
	ClearCart(ctx context.Context, sessionID string) (*model.CartView, error)

	// ApplyCoupon validates a coupon against the cart subtotal and applies it.
	ApplyCoupon(ctx context.Context, sessionID, code string) (*model.CouponOutcome, error)

	// RemoveCoupon reverts the cart to its raw subtotal.
	RemoveCoupon(ctx context.Context, sessionID string) (*model.CartView, error)
}

// CheckoutService turns a session's cart into a backend order.
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req model.CheckoutRequest) (*model.CheckoutResult, error)
}

// CatalogService is a read-through over backend products and variants.
type CatalogService interface {
	ListProducts(ctx context.Context, page, size int) (*model.Page[model.Product], error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListVariants(ctx context.Context, productID int64) ([]model.Variant, error)
}

// OrderService is a read-through over backend orders.
type OrderService interface {
	GetOrder(ctx context.Context, id int64) (*model.OrderConfirmation, error)

	// ListOrders returns every order, or only those of email when set.
	ListOrders(ctx context.Context, email string) ([]model.OrderConfirmation, error)
}

// AdminService backs the back-office endpoints.
type AdminService interface {
	// Dashboard aggregates store statistics. Backend failures degrade the
	// affected figure to zero.
	Dashboard(ctx context.Context) model.DashboardStats

	// CreateCoupon validates and creates a coupon, then records the activity.
	CreateCoupon(ctx context.Context, adminEmail string, c model.Coupon) (*model.Coupon, error)

	// PreviewCoupon prices a coupon rule against a subtotal without saving it.
	PreviewCoupon(ctx context.Context, c model.Coupon, subtotal decimal.Decimal) (*coupon.Quote, error)
}
