package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"victus-storefront/internal/model"
)

// ListProducts implements CatalogAPI.
func (c *Client) ListProducts(ctx context.Context, page, size int) (*model.Page[model.Product], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out model.Page[model.Product]
	if err := c.do(ctx, "list_products", http.MethodGet, "/products?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct implements CatalogAPI.
func (c *Client) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := c.do(ctx, "get_product", http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListVariants implements CatalogAPI.
func (c *Client) ListVariants(ctx context.Context) ([]model.Variant, error) {
	var variants []model.Variant
	if err := c.do(ctx, "list_variants", http.MethodGet, "/variants", nil, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// ListVariantsByProduct implements CatalogAPI.
func (c *Client) ListVariantsByProduct(ctx context.Context, productID int64) ([]model.Variant, error) {
	var variants []model.Variant
	path := fmt.Sprintf("/variants/product/%d", productID)
	if err := c.do(ctx, "list_variants_by_product", http.MethodGet, path, nil, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}
