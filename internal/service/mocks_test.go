package service

import (
	"context"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCartAPI is a mock implementation of backend.CartAPI.
type MockCartAPI struct {
	mock.Mock
}

func (m *MockCartAPI) GetCartByEmail(ctx context.Context, email string) (*model.BackendCart, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackendCart), args.Error(1)
}

func (m *MockCartAPI) CreateCart(ctx context.Context, req model.CreateCartRequest) (*model.BackendCart, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BackendCart), args.Error(1)
}

func (m *MockCartAPI) AddCartProduct(ctx context.Context, req model.CartProductRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCartAPI) CalculateCartTotal(ctx context.Context, cartID int64) (*model.CartTotal, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartTotal), args.Error(1)
}

// MockOrderAPI is a mock implementation of backend.OrderAPI.
type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) CreateOrderFromCart(ctx context.Context, cartID int64, req model.FromCartOrderRequest) (*model.FromCartOrderResponse, error) {
	args := m.Called(ctx, cartID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FromCartOrderResponse), args.Error(1)
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, req model.DirectOrderRequest) (*model.PlacedOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlacedOrder), args.Error(1)
}

func (m *MockOrderAPI) GetOrder(ctx context.Context, id int64) (*model.OrderConfirmation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderConfirmation), args.Error(1)
}

func (m *MockOrderAPI) ListOrders(ctx context.Context) ([]model.OrderConfirmation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderConfirmation), args.Error(1)
}

func (m *MockOrderAPI) ListOrdersByEmail(ctx context.Context, email string) ([]model.OrderConfirmation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderConfirmation), args.Error(1)
}

// MockCatalogAPI is a mock implementation of backend.CatalogAPI.
type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) ListProducts(ctx context.Context, page, size int) (*model.Page[model.Product], error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page[model.Product]), args.Error(1)
}

func (m *MockCatalogAPI) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockCatalogAPI) ListVariants(ctx context.Context) ([]model.Variant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Variant), args.Error(1)
}

func (m *MockCatalogAPI) ListVariantsByProduct(ctx context.Context, productID int64) ([]model.Variant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Variant), args.Error(1)
}

// MockCouponAPI is a mock implementation of backend.CouponAPI.
type MockCouponAPI struct {
	mock.Mock
}

func (m *MockCouponAPI) ValidateCoupon(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.CouponValidation, error) {
	args := m.Called(ctx, code, cartTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CouponValidation), args.Error(1)
}

func (m *MockCouponAPI) CreateCoupon(ctx context.Context, c model.Coupon) (*model.Coupon, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

// MockActivityAPI is a mock implementation of backend.ActivityAPI.
type MockActivityAPI struct {
	mock.Mock
}

func (m *MockActivityAPI) LogActivity(ctx context.Context, entry model.ActivityLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockCouponValidator is a mock implementation of coupon.Validator.
type MockCouponValidator struct {
	mock.Mock
}

func (m *MockCouponValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*model.CouponValidation, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CouponValidation), args.Error(1)
}
