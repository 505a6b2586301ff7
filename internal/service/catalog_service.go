package service

import (
	"context"
	"errors"
	"fmt"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/model"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// catalogService implements CatalogService.
type catalogService struct {
	api    backend.CatalogAPI
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(api backend.CatalogAPI, logger zerolog.Logger) CatalogService {
	return &catalogService{
		api:    api,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// ListProducts retrieves one page of products.
func (s *catalogService) ListProducts(ctx context.Context, page, size int) (*model.Page[model.Product], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	products, err := s.api.ListProducts(ctx, page, size)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("size", size).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products.Content)).
		Int("page", page).
		Msg("retrieved products")

	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.api.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, model.NotFound("product")
		}
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListVariants retrieves the variants of a product.
func (s *catalogService) ListVariants(ctx context.Context, productID int64) ([]model.Variant, error) {
	variants, err := s.api.ListVariantsByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, model.NotFound("product")
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to list variants")
		return nil, fmt.Errorf("failed to get variants: %w", err)
	}
	if variants == nil {
		variants = []model.Variant{}
	}
	return variants, nil
}
