package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"victus-storefront/internal/model"
)

// CreateOrderFromCart implements OrderAPI.
func (c *Client) CreateOrderFromCart(ctx context.Context, cartID int64, req model.FromCartOrderRequest) (*model.FromCartOrderResponse, error) {
	var resp model.FromCartOrderResponse
	path := fmt.Sprintf("/orders/from-cart/%d", cartID)
	if err := c.do(ctx, "create_order_from_cart", http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	if resp.OrderID == 0 {
		return nil, fmt.Errorf("create_order_from_cart: backend returned no order id")
	}
	return &resp, nil
}

// CreateOrder implements OrderAPI.
func (c *Client) CreateOrder(ctx context.Context, req model.DirectOrderRequest) (*model.PlacedOrder, error) {
	var order model.PlacedOrder
	if err := c.do(ctx, "create_order", http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("create_order: backend returned no order id")
	}
	return &order, nil
}

// GetOrder implements OrderAPI.
func (c *Client) GetOrder(ctx context.Context, id int64) (*model.OrderConfirmation, error) {
	var order model.OrderConfirmation
	if err := c.do(ctx, "get_order", http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders implements OrderAPI.
func (c *Client) ListOrders(ctx context.Context) ([]model.OrderConfirmation, error) {
	var orders []model.OrderConfirmation
	if err := c.do(ctx, "list_orders", http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByEmail implements OrderAPI.
func (c *Client) ListOrdersByEmail(ctx context.Context, email string) ([]model.OrderConfirmation, error) {
	var orders []model.OrderConfirmation
	path := "/orders/user/" + url.PathEscape(email)
	if err := c.do(ctx, "list_orders_by_email", http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
