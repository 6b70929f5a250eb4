package repository

import (
	"context"
	"time"
)

// DailySummaryResult holds one day's aggregate figures from completed orders
type DailySummaryResult struct {
	OrderCount int
	GrossSales float64
	Discounts  float64
	Tax        float64
	Tips       float64
	NetSales   float64
}

// PaymentTotalsResult represents order totals aggregated by payment method
type PaymentTotalsResult struct {
	Method string
	Count  int
	Amount float64
}

// TopItemResult represents an item's sales performance over a period
type TopItemResult struct {
	Name         string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date    time.Time
	Orders  int
	Revenue float64
}

// AnalyticsRepository defines interface for report aggregation queries.
// All aggregates consider completed orders only.
type AnalyticsRepository interface {
	// GetDailySummary returns the aggregate figures for the given calendar day.
	GetDailySummary(ctx context.Context, day time.Time) (*DailySummaryResult, error)

	// GetPaymentTotals returns totals grouped by payment method for a period.
	GetPaymentTotals(ctx context.Context, from, to time.Time) ([]PaymentTotalsResult, error)

	// GetTopItems returns the best selling items by revenue for a period.
	GetTopItems(ctx context.Context, from, to time.Time, limit int) ([]TopItemResult, error)

	// GetSalesByDay returns per-day order counts and revenue for a period.
	GetSalesByDay(ctx context.Context, from, to time.Time) ([]DailySalesResult, error)
}
