package coupon

import (
	"context"
	"errors"
	"testing"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func TestValidator_Validate(t *testing.T) {
	subtotal := decimal.NewFromInt(100)
	ninety := decimal.NewFromInt(90)
	negative := decimal.NewFromInt(-10)

	tests := []struct {
		name          string
		code          string
		setupMock     func(m *MockCouponAPI)
		expectValid   bool
		expectReason  string
		expectedFinal string
		expectedErr   error
	}{
		{
			name: "Accepted",
			code: " save20 ",
			setupMock: func(m *MockCouponAPI) {
				m.On("ValidateCoupon", mock.Anything, "SAVE20", subtotal).Return(&model.CouponValidation{
					Valid: true, CouponCode: "SAVE20", Discount: decimal.NewFromInt(10), FinalAmount: &ninety,
				}, nil)
			},
			expectValid:   true,
			expectedFinal: "90.00",
		},
		{
			name: "Negative final floored",
			code: "HUGE",
			setupMock: func(m *MockCouponAPI) {
				m.On("ValidateCoupon", mock.Anything, "HUGE", subtotal).Return(&model.CouponValidation{
					Valid: true, Discount: decimal.NewFromInt(110), FinalAmount: &negative,
				}, nil)
			},
			expectValid:   true,
			expectedFinal: "0.00",
		},
		{
			name: "Rejected with reason",
			code: "OLD",
			setupMock: func(m *MockCouponAPI) {
				m.On("ValidateCoupon", mock.Anything, "OLD", subtotal).Return(&model.CouponValidation{
					Valid: false, Error: "Coupon has expired",
				}, nil)
			},
			expectValid:  false,
			expectReason: "Coupon has expired",
		},
		{
			name: "Rejected without reason",
			code: "NOPE",
			setupMock: func(m *MockCouponAPI) {
				m.On("ValidateCoupon", mock.Anything, "NOPE", subtotal).Return(&model.CouponValidation{Valid: false}, nil)
			},
			expectValid:  false,
			expectReason: "Invalid coupon code",
		},
		{
			name:        "Blank code never reaches the backend",
			code:        "  ",
			setupMock:   func(m *MockCouponAPI) {},
			expectedErr: model.ErrEmptyCouponCode,
		},
		{
			name: "Backend unavailable",
			code: "SAVE20",
			setupMock: func(m *MockCouponAPI) {
				m.On("ValidateCoupon", mock.Anything, "SAVE20", subtotal).Return(nil, backend.ErrUnavailable)
			},
			expectedErr: backend.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockCouponAPI)
			tt.setupMock(api)

			v := NewValidator(api, zerolog.Nop())
			result, err := v.Validate(context.Background(), tt.code, subtotal)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.expectedErr))
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.expectValid, result.Valid)
				assert.Equal(t, tt.expectReason, result.Error)
				assert.NotEmpty(t, result.CouponCode)
				if tt.expectedFinal != "" {
					require.NotNil(t, result.FinalAmount)
					assert.Equal(t, tt.expectedFinal, result.FinalAmount.StringFixed(2))
				}
			}

			api.AssertExpectations(t)
		})
	}
}
