package backend

import (
	"context"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

// CartAPI covers the server-side cart endpoints used during checkout.
type CartAPI interface {
	// GetCartByEmail returns the customer's cart. A missing cart yields an
	// error matching ErrNotFound.
	GetCartByEmail(ctx context.Context, email string) (*model.BackendCart, error)

	// CreateCart creates an active cart for the customer.
	CreateCart(ctx context.Context, req model.CreateCartRequest) (*model.BackendCart, error)

	// AddCartProduct pushes a single line into a cart.
	AddCartProduct(ctx context.Context, req model.CartProductRequest) error

	// CalculateCartTotal asks the backend to recompute the cart total.
	CalculateCartTotal(ctx context.Context, cartID int64) (*model.CartTotal, error)
}

// OrderAPI covers order creation and lookup.
type OrderAPI interface {
	CreateOrderFromCart(ctx context.Context, cartID int64, req model.FromCartOrderRequest) (*model.FromCartOrderResponse, error)
	CreateOrder(ctx context.Context, req model.DirectOrderRequest) (*model.PlacedOrder, error)
	GetOrder(ctx context.Context, id int64) (*model.OrderConfirmation, error)
	ListOrders(ctx context.Context) ([]model.OrderConfirmation, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]model.OrderConfirmation, error)
}

// CatalogAPI covers products and variants.
type CatalogAPI interface {
	ListProducts(ctx context.Context, page, size int) (*model.Page[model.Product], error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListVariants(ctx context.Context) ([]model.Variant, error)
	ListVariantsByProduct(ctx context.Context, productID int64) ([]model.Variant, error)
}

// CouponAPI covers coupon validation and creation.
type CouponAPI interface {
	// ValidateCoupon checks code against a cart total. A business rejection
	// is a result with Valid=false, not an error.
	ValidateCoupon(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.CouponValidation, error)
	CreateCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error)
}

// ActivityAPI records admin audit entries.
type ActivityAPI interface {
	LogActivity(ctx context.Context, entry model.ActivityLog) error
}

var (
	_ CartAPI     = (*Client)(nil)
	_ OrderAPI    = (*Client)(nil)
	_ CatalogAPI  = (*Client)(nil)
	_ CouponAPI   = (*Client)(nil)
	_ ActivityAPI = (*Client)(nil)
)
