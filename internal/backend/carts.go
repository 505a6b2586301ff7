package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"victus-storefront/internal/model"
)

// GetCartByEmail implements CartAPI.
func (c *Client) GetCartByEmail(ctx context.Context, email string) (*model.BackendCart, error) {
	var cart model.BackendCart
	path := "/carts/user/" + url.PathEscape(email)
	if err := c.do(ctx, "get_cart_by_email", http.MethodGet, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// CreateCart implements CartAPI.
func (c *Client) CreateCart(ctx context.Context, req model.CreateCartRequest) (*model.BackendCart, error) {
	var cart model.BackendCart
	if err := c.do(ctx, "create_cart", http.MethodPost, "/carts", req, &cart); err != nil {
		return nil, err
	}
	if cart.ID == 0 {
		return nil, fmt.Errorf("create_cart: backend returned no cart id")
	}
	return &cart, nil
}

// AddCartProduct implements CartAPI.
func (c *Client) AddCartProduct(ctx context.Context, req model.CartProductRequest) error {
	return c.do(ctx, "add_cart_product", http.MethodPost, "/cart-products", req, nil)
}

// CalculateCartTotal implements CartAPI.
func (c *Client) CalculateCartTotal(ctx context.Context, cartID int64) (*model.CartTotal, error) {
	var total model.CartTotal
	path := fmt.Sprintf("/carts/%d/calculate-total", cartID)
	if err := c.do(ctx, "calculate_cart_total", http.MethodPut, path, nil, &total); err != nil {
		return nil, err
	}
	return &total, nil
}
