// Package analytics implements the sales aggregation pipeline: validity
// filtering, week bucketing, grouping, growth computation, KPI summaries,
// and the table/CSV helpers the dashboard consumes. Every function here is
// pure; reports are recomputed in full from the current order list.
package analytics

import (
	"time"

	"github.com/shopsy-platform/service-analytics/internal/domain/orders"
)

// ProductSummary accumulates sales for one product over the valid order set.
type ProductSummary struct {
	Name          string  `json:"name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

// WeekBucket accumulates sales for one Monday-to-Sunday span. WeekStart is
// the Monday in YYYY-MM-DD form and doubles as the bucket key.
type WeekBucket struct {
	WeekStart  string  `json:"week_start"`
	Label      string  `json:"label"`
	Revenue    float64 `json:"revenue"`
	Quantity   int     `json:"quantity"`
	OrderCount int     `json:"order_count"`
}

// WeekGrowth is a WeekBucket with week-over-week growth percentages.
type WeekGrowth struct {
	WeekBucket
	RevenueGrowthPct  float64 `json:"revenue_growth_pct"`
	QuantityGrowthPct float64 `json:"quantity_growth_pct"`
}

// WeeklyProductSummary accumulates sales for one product within one week.
type WeeklyProductSummary struct {
	WeekStart     string  `json:"week_start"`
	Product       string  `json:"product"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	OrderCount    int     `json:"order_count"`
}

// SummaryStats is the KPI headline block.
type SummaryStats struct {
	TotalRevenue        float64         `json:"total_revenue"`
	TotalQuantity       int             `json:"total_quantity"`
	BestSellingProduct  *ProductSummary `json:"best_selling_product"`
	WorstSellingProduct *ProductSummary `json:"worst_selling_product"`
	TotalOrders         int             `json:"total_orders"`
	TotalProducts       int             `json:"total_products"`
	TotalWeeks          int             `json:"total_weeks"`
	AvgWeeklyRevenue    float64         `json:"avg_weekly_revenue"`
	AvgWeeklyQuantity   float64         `json:"avg_weekly_quantity"`
	BestWeek            *WeekBucket     `json:"best_week"`
	WorstWeek           *WeekBucket     `json:"worst_week"`
}

// Report is the full derived output for one order list. It carries the
// dated display set alongside every aggregate so callers never recompute.
type Report struct {
	Orders         []orders.Order         `json:"orders"`
	Products       []ProductSummary       `json:"products"`
	Weeks          []WeekGrowth           `json:"weeks"`
	WeeklyProducts []WeeklyProductSummary `json:"weekly_products"`
	Summary        SummaryStats           `json:"summary"`
	Empty          bool                   `json:"empty"`
	GeneratedAt    time.Time              `json:"generated_at"`
}
