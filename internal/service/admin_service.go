package service

import (
	"context"
	"fmt"
	"strings"

	"victus-storefront/internal/backend"
	"victus-storefront/internal/coupon"
	"victus-storefront/internal/model"
	"victus-storefront/internal/validation"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAdminEmail is recorded in the activity log when the caller
	// does not identify itself.
	DefaultAdminEmail = "admin@victus.com"

	// LowStockThreshold is the stock level below which a variant counts as
	// low on the dashboard.
	LowStockThreshold = 10

	dashboardProductPageSize = 100
)

// adminService implements AdminService.
type adminService struct {
	catalog  backend.CatalogAPI
	orders   backend.OrderAPI
	coupons  backend.CouponAPI
	activity backend.ActivityAPI
	logger   zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	catalog backend.CatalogAPI,
	orders backend.OrderAPI,
	coupons backend.CouponAPI,
	activity backend.ActivityAPI,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		catalog:  catalog,
		orders:   orders,
		coupons:  coupons,
		activity: activity,
		logger:   logger.With().Str("service", "admin").Logger(),
	}
}

// Dashboard gathers the figures concurrently; each backend call that fails
// contributes zero.
func (s *adminService) Dashboard(ctx context.Context) model.DashboardStats {
	stats := model.DashboardStats{
		TotalRevenue:      decimal.Zero,
		LowStockThreshold: LowStockThreshold,
	}

	var g errgroup.Group

	g.Go(func() error {
		orders, err := s.orders.ListOrders(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dashboard: failed to load orders")
			return nil
		}
		revenue := decimal.Zero
		for _, o := range orders {
			revenue = revenue.Add(o.TotalPrice)
		}
		stats.TotalOrders = len(orders)
		stats.TotalRevenue = revenue
		return nil
	})

	g.Go(func() error {
		page, err := s.catalog.ListProducts(ctx, 0, dashboardProductPageSize)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dashboard: failed to load products")
			return nil
		}
		stats.TotalProducts = page.TotalElements
		if stats.TotalProducts == 0 {
			stats.TotalProducts = len(page.Content)
		}
		return nil
	})

	g.Go(func() error {
		variants, err := s.catalog.ListVariants(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("dashboard: failed to load variants")
			return nil
		}
		for _, v := range variants {
			if v.StockQuantity < LowStockThreshold {
				stats.LowStockVariants++
			}
		}
		return nil
	})

	_ = g.Wait()
	return stats
}

// CreateCoupon validates the coupon, creates it in the backend and records
// the activity. A failed activity record does not fail the creation.
func (s *adminService) CreateCoupon(ctx context.Context, adminEmail string, c model.Coupon) (*model.Coupon, error) {
	code, err := coupon.NormalizeCode(c.Code)
	if err != nil {
		return nil, err
	}
	c.Code = code

	if err := validation.Struct(c); err != nil {
		return nil, inputError(err)
	}
	if err := coupon.RuleFromCoupon(c).Validate(); err != nil {
		return nil, err
	}

	created, err := s.coupons.CreateCoupon(ctx, c)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_code", code).Msg("failed to create coupon")
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	adminEmail = strings.TrimSpace(adminEmail)
	if adminEmail == "" {
		adminEmail = DefaultAdminEmail
	}

	entry := model.ActivityLog{
		AdminEmail:  adminEmail,
		ActionType:  model.ActionCreate,
		EntityType:  model.EntityCoupon,
		Description: fmt.Sprintf("Created coupon: %s", created.Code),
	}
	if created.ID != 0 {
		id := created.ID
		entry.EntityID = &id
	}
	if err := s.activity.LogActivity(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("coupon_code", code).Msg("failed to record coupon activity")
	}

	s.logger.Info().
		Str("coupon_code", created.Code).
		Str("admin_email", adminEmail).
		Msg("coupon created")

	return created, nil
}

// PreviewCoupon prices the coupon rule against subtotal.
func (s *adminService) PreviewCoupon(_ context.Context, c model.Coupon, subtotal decimal.Decimal) (*coupon.Quote, error) {
	if subtotal.IsNegative() {
		return nil, model.InvalidInput(map[string]string{"subtotal": "cannot be negative"})
	}

	quote, err := coupon.RuleFromCoupon(c).Apply(subtotal)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}
