package model

import "github.com/shopspring/decimal"

// DashboardStats summarises the store for the back-office landing page.
type DashboardStats struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalProducts     int             `json:"totalProducts"`
	LowStockVariants  int             `json:"lowStockProducts"`
	LowStockThreshold int             `json:"lowStockThreshold"`
}

// ActivityLog is an admin audit entry sent to the backend quick-log endpoint.
type ActivityLog struct {
	AdminEmail  string `json:"admin_email"`
	ActionType  string `json:"action_type"`
	EntityType  string `json:"entity_type"`
	EntityID    *int64 `json:"entity_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// Activity action and entity types.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"

	EntityCoupon = "COUPON"
)
