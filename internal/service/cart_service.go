package service

import (
	"context"
	"errors"
	"fmt"

	"victus-storefront/internal/cart"
	"victus-storefront/internal/coupon"
	"victus-storefront/internal/model"
	"victus-storefront/internal/validation"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService on top of the session registry.
type cartService struct {
	registry  *cart.Registry
	validator coupon.Validator
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(registry *cart.Registry, validator coupon.Validator, logger zerolog.Logger) CartService {
	return &cartService{
		registry:  registry,
		validator: validator,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) CreateSession(_ context.Context) model.CartView {
	sess := s.registry.Create()
	return sess.View()
}

func (s *cartService) GetCart(_ context.Context, sessionID string) (*model.CartView, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

func (s *cartService) DeleteSession(_ context.Context, sessionID string) error {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return err
	}
	if sess.CheckingOut() {
		return model.ErrCheckoutInProgress
	}
	s.registry.Delete(sessionID)
	return nil
}

func (s *cartService) AddItem(_ context.Context, sessionID string, item model.CartItem) (*model.CartMutation, error) {
	if err := validation.Struct(item); err != nil {
		return nil, inputError(err)
	}
	if item.UnitPrice.IsNegative() {
		return nil, model.InvalidInput(map[string]string{"unitPrice": "cannot be negative"})
	}

	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	var ev cart.Event
	if err := sess.Mutate(func(st *cart.Store) error {
		ev = st.Add(item)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int64("variant_id", item.VariantID).
		Str("event", string(ev.Kind)).
		Msg("cart item added")

	return &model.CartMutation{Cart: sess.View(), Notification: ev.Notification}, nil
}

func (s *cartService) UpdateQuantity(_ context.Context, sessionID string, variantID int64, quantity int) (*model.CartMutation, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	var ev cart.Event
	if err := sess.Mutate(func(st *cart.Store) error {
		ev = st.UpdateQuantity(variantID, quantity)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int64("variant_id", variantID).
		Int("quantity", quantity).
		Str("event", string(ev.Kind)).
		Msg("cart quantity updated")

	return &model.CartMutation{Cart: sess.View(), Notification: ev.Notification}, nil
}

func (s *cartService) RemoveItem(_ context.Context, sessionID string, variantID int64) (*model.CartMutation, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	var ev cart.Event
	if err := sess.Mutate(func(st *cart.Store) error {
		ev = st.Remove(variantID)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Int64("variant_id", variantID).
		Msg("cart item removed")

	return &model.CartMutation{Cart: sess.View(), Notification: ev.Notification}, nil
}

func (s *cartService) ClearCart(_ context.Context, sessionID string) (*model.CartView, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Mutate(func(st *cart.Store) error {
		st.Clear()
		return nil
	}); err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

func (s *cartService) ApplyCoupon(ctx context.Context, sessionID, code string) (*model.CouponOutcome, error) {
	code, err := coupon.NormalizeCode(code)
	if err != nil {
		return nil, err
	}

	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	// Fail fast before the network call; the guard is checked again when
	// the coupon is stored.
	var subtotal decimal.Decimal
	if err := sess.Mutate(func(st *cart.Store) error {
		subtotal = st.TotalPrice()
		return nil
	}); err != nil {
		return nil, err
	}

	result, err := s.validator.Validate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		s.logger.Info().
			Str("session_id", sessionID).
			Str("coupon_code", code).
			Str("reason", result.Error).
			Msg("coupon rejected")
		return nil, model.CouponRejected(result.Error)
	}

	applied := coupon.Applied(result, subtotal)
	if err := sess.Mutate(func(st *cart.Store) error {
		// The verdict is only good for the subtotal it was priced against.
		if !st.TotalPrice().Equal(subtotal) {
			return model.CouponRejected("Your cart changed while the coupon was being checked. Please try again.")
		}
		sess.ApplyCoupon(applied)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("coupon_code", applied.Code).
		Str("discount", applied.DiscountAmount.StringFixed(2)).
		Msg("coupon applied")

	return &model.CouponOutcome{
		Cart: sess.View(),
		Notification: model.Notification{
			Title:       "Coupon Applied!",
			Description: fmt.Sprintf("You saved $%s", applied.DiscountAmount.StringFixed(2)),
		},
	}, nil
}

func (s *cartService) RemoveCoupon(_ context.Context, sessionID string) (*model.CartView, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Mutate(func(*cart.Store) error {
		sess.RemoveCoupon()
		return nil
	}); err != nil {
		return nil, err
	}
	view := sess.View()
	return &view, nil
}

func lookupSession(registry *cart.Registry, sessionID string) (*cart.Session, error) {
	sess, ok := registry.Get(sessionID)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// inputError converts a validation failure into a domain error.
func inputError(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return model.InvalidInput(verr.Fields())
	}
	return err
}
