package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/cart"
	"victus-storefront/internal/metrics"
	"victus-storefront/internal/model"
	"victus-storefront/internal/repository"
	"victus-storefront/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// StalePendingAttempt is how long a pending ledger attempt may go without an
// update before its key is considered abandoned. It must exceed the longest
// checkout.
const StalePendingAttempt = 10 * time.Minute

// checkoutService implements CheckoutService. Each step runs once, in order:
// cart resolution, line sync, order creation with a direct-order fallback,
// then confirmation.
type checkoutService struct {
	registry *cart.Registry
	carts    backend.CartAPI
	orders   backend.OrderAPI
	ledger   repository.CheckoutAttemptRepository
	now      func() time.Time
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	registry *cart.Registry,
	carts backend.CartAPI,
	orders backend.OrderAPI,
	ledger repository.CheckoutAttemptRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		registry: registry,
		carts:    carts,
		orders:   orders,
		ledger:   ledger,
		now:      time.Now,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

// Checkout submits the session's cart as an order.
func (s *checkoutService) Checkout(ctx context.Context, sessionID string, req model.CheckoutRequest) (*model.CheckoutResult, error) {
	sess, err := lookupSession(s.registry, sessionID)
	if err != nil {
		return nil, err
	}

	if !sess.BeginCheckout() {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeInProgress).Inc()
		return nil, model.ErrCheckoutInProgress
	}
	defer sess.EndCheckout()

	// An order half-created must not be abandoned because the client went away.
	ctx = context.WithoutCancel(ctx)

	key := strings.TrimSpace(req.IdempotencyKey)

	// A resubmission of a confirmed checkout gets the same answer even though
	// the cart has been cleared since.
	if key != "" {
		prev := s.lookupAttempt(ctx, key, s.logger)
		if prev != nil && prev.SessionID == sessionID && prev.Status == model.AttemptStatusConfirmed {
			metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return replayResult(prev), nil
		}
	}

	view := sess.View()
	if len(view.Lines) == 0 {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, model.ErrEmptyCart
	}

	form := trimForm(req.Form)
	if err := validation.Struct(form); err != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		var verr *validation.Error
		if errors.As(err, &verr) {
			return nil, model.MissingInformation(verr.Fields())
		}
		return nil, model.ErrMissingInformation
	}

	// An order already exists for this session: only its confirmation is
	// retried, never a second order.
	if pending, pendingKey := sess.PendingOrder(); pending != nil {
		logger := s.logger.With().
			Str("session_id", sessionID).
			Str("idempotency_key", pendingKey).
			Logger()

		attempt := s.lookupAttempt(ctx, pendingKey, logger)
		if attempt == nil {
			orderID := pending.ID
			attempt = &model.CheckoutAttempt{
				IdempotencyKey: pendingKey,
				SessionID:      sessionID,
				Email:          form.Email,
				Status:         model.AttemptStatusPlaced,
				OrderID:        &orderID,
				TotalPrice:     pending.TotalPrice,
			}
		}
		logger.Info().Int64("order_id", pending.ID).Msg("retrying confirmation of placed order")
		return s.confirm(ctx, sess, attempt, *pending, attempt.UsedFallback, nil, logger)
	}

	if key == "" {
		key = uuid.NewString()
	}

	logger := s.logger.With().
		Str("session_id", sessionID).
		Str("idempotency_key", key).
		Logger()

	attempt, replay, err := s.beginAttempt(ctx, sessionID, key, form.Email, view.FinalTotal, logger)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	if replay != nil {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		logger.Info().Int64("order_id", replay.OrderID).Msg("returning result of earlier checkout")
		return replay, nil
	}

	// The ledger knows of an order this key already placed.
	if attempt.Status == model.AttemptStatusPlaced && attempt.OrderID != nil {
		placed := model.PlacedOrder{ID: *attempt.OrderID, TotalPrice: attempt.TotalPrice}
		return s.confirm(ctx, sess, attempt, placed, attempt.UsedFallback, nil, logger)
	}

	cartID, warnings := s.resolveCart(ctx, form.Email, view, logger)

	order, usedFallback, err := s.createOrder(ctx, cartID, form, view.FinalTotal, logger)
	if err != nil {
		msg := err.Error()
		attempt.Status = model.AttemptStatusFailed
		attempt.Error = &msg
		s.saveAttempt(ctx, attempt, logger)

		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		logger.Error().Err(err).Msg("order creation failed")
		return nil, model.OrderFailed(err)
	}

	if order.TotalPrice.IsZero() {
		order.TotalPrice = view.FinalTotal
	}

	orderID := order.ID
	attempt.Status = model.AttemptStatusPlaced
	attempt.OrderID = &orderID
	attempt.TotalPrice = order.TotalPrice
	attempt.UsedFallback = usedFallback
	attempt.Error = nil
	s.saveAttempt(ctx, attempt, logger)

	return s.confirm(ctx, sess, attempt, *order, usedFallback, warnings, logger)
}

// beginAttempt records a pending attempt for key. When key already produced
// a confirmed order, the earlier result is returned instead. Ledger failures
// are logged and do not block the checkout.
func (s *checkoutService) beginAttempt(
	ctx context.Context,
	sessionID, key, email string,
	total decimal.Decimal,
	logger zerolog.Logger,
) (*model.CheckoutAttempt, *model.CheckoutResult, error) {
	attempt := &model.CheckoutAttempt{
		IdempotencyKey: key,
		SessionID:      sessionID,
		Email:          email,
		Status:         model.AttemptStatusPending,
		TotalPrice:     total,
	}

	prev := s.lookupAttempt(ctx, key, logger)
	if prev != nil {
		if prev.SessionID != sessionID {
			return nil, nil, model.InvalidInput(map[string]string{
				"idempotencyKey": "already used by another cart",
			})
		}

		switch prev.Status {
		case model.AttemptStatusConfirmed:
			return nil, replayResult(prev), nil
		case model.AttemptStatusPending:
			// A pending row nobody has touched for a long time was left by a
			// process that died mid-checkout; it is retried like a failure.
			if s.now().Sub(prev.UpdatedAt) < StalePendingAttempt {
				return nil, nil, model.ErrCheckoutInProgress
			}
			logger.Warn().
				Time("updated_at", prev.UpdatedAt).
				Msg("taking over abandoned pending checkout attempt")
		case model.AttemptStatusPlaced:
			return prev, nil, nil
		}

		// A failed or abandoned attempt may be retried under the same key.
		prev.Status = model.AttemptStatusPending
		prev.Email = email
		prev.TotalPrice = total
		prev.Error = nil
		s.saveAttempt(ctx, prev, logger)
		return prev, nil, nil
	}

	if err := s.ledger.Create(ctx, attempt); err != nil {
		if errors.Is(err, repository.ErrAttemptExists) {
			return nil, nil, model.ErrCheckoutInProgress
		}
		logger.Warn().Err(err).Msg("failed to record checkout attempt")
	}
	return attempt, nil, nil
}

func (s *checkoutService) lookupAttempt(ctx context.Context, key string, logger zerolog.Logger) *model.CheckoutAttempt {
	prev, err := s.ledger.GetByKey(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read checkout attempt")
		return nil
	}
	return prev
}

func (s *checkoutService) saveAttempt(ctx context.Context, attempt *model.CheckoutAttempt, logger zerolog.Logger) {
	if err := s.ledger.Update(ctx, attempt); err != nil {
		logger.Warn().Err(err).Str("status", attempt.Status).Msg("failed to update checkout attempt")
	}
}

// resolveCart finds the customer's backend cart or creates one and pushes
// the local lines into it. An existing cart is reused as is. Lines that fail
// to sync are returned as warnings; a cart that cannot be created yields 0.
func (s *checkoutService) resolveCart(ctx context.Context, email string, view model.CartView, logger zerolog.Logger) (int64, []model.LineSyncFailure) {
	existing, err := s.carts.GetCartByEmail(ctx, email)
	if err == nil && existing != nil && existing.ID != 0 {
		logger.Debug().Int64("cart_id", existing.ID).Msg("reusing existing backend cart")
		return existing.ID, nil
	}
	if err != nil && !errors.Is(err, backend.ErrNotFound) {
		logger.Warn().Err(err).Msg("backend cart lookup failed, creating a new cart")
	}

	created, err := s.carts.CreateCart(ctx, model.CreateCartRequest{
		Email:      email,
		TotalPrice: view.TotalPrice,
		IsActive:   true,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("backend cart creation failed")
		return 0, nil
	}

	var warnings []model.LineSyncFailure
	for _, line := range view.Lines {
		err := s.carts.AddCartProduct(ctx, model.CartProductRequest{
			VariantID: line.VariantID,
			CartID:    created.ID,
			Quantity:  line.Quantity,
		})
		if err != nil {
			warnings = append(warnings, model.LineSyncFailure{
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				Error:     err.Error(),
			})
		}
	}

	if len(warnings) > 0 {
		metrics.CartLineSyncFailuresTotal.Add(float64(len(warnings)))
		failed := zerolog.Arr()
		for _, w := range warnings {
			failed.Int64(w.VariantID)
		}
		logger.Warn().
			Int64("cart_id", created.ID).
			Int("failed_lines", len(warnings)).
			Int("total_lines", len(view.Lines)).
			Array("variant_ids", failed).
			Msg("some cart lines could not be synced")
	}

	if _, err := s.carts.CalculateCartTotal(ctx, created.ID); err != nil {
		logger.Warn().Err(err).Int64("cart_id", created.ID).Msg("backend cart total recalculation failed")
	}

	return created.ID, warnings
}

// createOrder converts the backend cart into an order, falling back to a
// direct order for the local total when there is no cart or conversion fails.
func (s *checkoutService) createOrder(
	ctx context.Context,
	cartID int64,
	form model.CheckoutForm,
	total decimal.Decimal,
	logger zerolog.Logger,
) (*model.PlacedOrder, bool, error) {
	address := form.ShippingAddress()

	if cartID != 0 {
		resp, err := s.orders.CreateOrderFromCart(ctx, cartID, model.FromCartOrderRequest{
			Address:       address,
			PhoneNum:      form.Phone,
			PaymentMethod: model.PaymentMethodCard,
			OrderStatus:   model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusPending,
			ClearCart:     true,
		})
		if err == nil {
			return &model.PlacedOrder{ID: resp.OrderID, TotalPrice: resp.TotalPrice}, false, nil
		}
		logger.Warn().Err(err).Int64("cart_id", cartID).Msg("cart conversion failed, creating order directly")
	}

	metrics.OrderFallbacksTotal.Inc()

	order, err := s.orders.CreateOrder(ctx, model.DirectOrderRequest{
		Email:         form.Email,
		Address:       address,
		PhoneNum:      form.Phone,
		TotalPrice:    total,
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		PaymentMethod: model.PaymentMethodCard,
	})
	if err != nil {
		return nil, true, fmt.Errorf("create order: %w", err)
	}
	return order, true, nil
}

// confirm fetches the placed order. On success the cart is cleared and the
// coupon dropped. On failure the order is kept on the session so that a
// later submission only retries this step.
func (s *checkoutService) confirm(
	ctx context.Context,
	sess *cart.Session,
	attempt *model.CheckoutAttempt,
	order model.PlacedOrder,
	usedFallback bool,
	warnings []model.LineSyncFailure,
	logger zerolog.Logger,
) (*model.CheckoutResult, error) {
	result := &model.CheckoutResult{
		OrderID:        order.ID,
		TotalPrice:     order.TotalPrice,
		IdempotencyKey: attempt.IdempotencyKey,
		UsedFallback:   usedFallback,
		SyncWarnings:   warnings,
	}

	confirmation, err := s.orders.GetOrder(ctx, order.ID)
	if err != nil {
		sess.SetPendingOrder(order, attempt.IdempotencyKey)

		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomePlaced).Inc()
		logger.Warn().Err(err).Int64("order_id", order.ID).Msg("order placed but confirmation unavailable")

		result.Status = model.CheckoutStatusPlaced
		result.Notification = model.Notification{
			Title: "Order Placed",
			Description: fmt.Sprintf("Order #%d placed. Total: $%s. Order details are not available yet.",
				order.ID, order.TotalPrice.StringFixed(2)),
		}
		return result, nil
	}

	sess.Store().Clear()
	sess.RemoveCoupon()
	sess.ClearPendingOrder()

	orderID := order.ID
	attempt.Status = model.AttemptStatusConfirmed
	attempt.OrderID = &orderID
	attempt.TotalPrice = order.TotalPrice
	attempt.UsedFallback = usedFallback
	s.saveAttempt(ctx, attempt, logger)

	metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeConfirmed).Inc()
	logger.Info().
		Int64("order_id", order.ID).
		Str("total", order.TotalPrice.StringFixed(2)).
		Bool("used_fallback", usedFallback).
		Int("sync_warnings", len(warnings)).
		Msg("order confirmed")

	result.Status = model.CheckoutStatusConfirmed
	result.Order = confirmation
	result.Notification = successNotification(order.TotalPrice)
	return result, nil
}

func replayResult(a *model.CheckoutAttempt) *model.CheckoutResult {
	var orderID int64
	if a.OrderID != nil {
		orderID = *a.OrderID
	}
	return &model.CheckoutResult{
		Status:         model.CheckoutStatusConfirmed,
		OrderID:        orderID,
		TotalPrice:     a.TotalPrice,
		IdempotencyKey: a.IdempotencyKey,
		UsedFallback:   a.UsedFallback,
		Notification:   successNotification(a.TotalPrice),
	}
}

func successNotification(total decimal.Decimal) model.Notification {
	return model.Notification{
		Title:       "Order Placed Successfully!",
		Description: fmt.Sprintf("Order placed. Total: $%s", total.StringFixed(2)),
	}
}

func trimForm(f model.CheckoutForm) model.CheckoutForm {
	return model.CheckoutForm{
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Email:      strings.TrimSpace(f.Email),
		Phone:      strings.TrimSpace(f.Phone),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		ZipCode:    strings.TrimSpace(f.ZipCode),
		Country:    strings.TrimSpace(f.Country),
		CardNumber: strings.TrimSpace(f.CardNumber),
		CardName:   strings.TrimSpace(f.CardName),
		ExpiryDate: strings.TrimSpace(f.ExpiryDate),
		CVV:        strings.TrimSpace(f.CVV),
	}
}
