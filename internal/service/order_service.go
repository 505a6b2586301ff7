package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/model"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	api    backend.OrderAPI
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(api backend.OrderAPI, logger zerolog.Logger) OrderService {
	return &orderService{
		api:    api,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// GetOrder retrieves an order with its lines.
func (s *orderService) GetOrder(ctx context.Context, id int64) (*model.OrderConfirmation, error) {
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			s.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, model.NotFound("order")
		}
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// ListOrders retrieves all orders, or the orders of one customer.
func (s *orderService) ListOrders(ctx context.Context, email string) ([]model.OrderConfirmation, error) {
	email = strings.TrimSpace(email)

	var (
		orders []model.OrderConfirmation
		err    error
	)
	if email == "" {
		orders, err = s.api.ListOrders(ctx)
	} else {
		orders, err = s.api.ListOrdersByEmail(ctx, email)
	}

	if err != nil {
		if email != "" && errors.Is(err, backend.ErrNotFound) {
			return []model.OrderConfirmation{}, nil
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []model.OrderConfirmation{}
	}
	return orders, nil
}
