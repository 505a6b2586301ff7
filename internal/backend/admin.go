package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"victus-storefront/internal/model"

	"github.com/shopspring/decimal"
)

type validateCouponRequest struct {
	CartTotal decimal.Decimal `json:"cart_total"`
}

// ValidateCoupon implements CouponAPI. The backend answers a rejected coupon
// either with valid=false or with a 4xx carrying the reason; both become a
// result with Valid=false.
func (c *Client) ValidateCoupon(ctx context.Context, code string, cartTotal decimal.Decimal) (*model.CouponValidation, error) {
	var out model.CouponValidation
	path := "/admin/coupons/validate/" + url.PathEscape(code)

	err := c.do(ctx, "validate_coupon", http.MethodPost, path, validateCouponRequest{CartTotal: cartTotal}, &out)
	if err != nil {
		var be *Error
		if errors.As(err, &be) && isRejection(be.Status) {
			return &model.CouponValidation{
				Valid:          false,
				CouponCode:     code,
				OriginalAmount: cartTotal,
				Error:          be.Message,
			}, nil
		}
		return nil, err
	}
	return &out, nil
}

func isRejection(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return false
	}
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

// CreateCoupon implements CouponAPI.
func (c *Client) CreateCoupon(ctx context.Context, coupon model.Coupon) (*model.Coupon, error) {
	var created model.Coupon
	if err := c.do(ctx, "create_coupon", http.MethodPost, "/admin/coupons", coupon, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// LogActivity implements ActivityAPI.
func (c *Client) LogActivity(ctx context.Context, entry model.ActivityLog) error {
	return c.do(ctx, "log_activity", http.MethodPost, "/admin/activities/quick-log", entry, nil)
}
