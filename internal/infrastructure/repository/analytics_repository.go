package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainRepo "github.com/tillpoint/pos-api/internal/domain/repository"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDailySummary(ctx context.Context, day time.Time) (*domainRepo.DailySummaryResult, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var result domainRepo.DailySummaryResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(id) as order_count,
			COALESCE(SUM(subtotal), 0) / 100.0 as gross_sales,
			COALESCE(SUM(discount), 0) / 100.0 as discounts,
			COALESCE(SUM(tax_amount), 0) / 100.0 as tax,
			COALESCE(SUM(tip), 0) / 100.0 as tips,
			COALESCE(SUM(subtotal - discount), 0) / 100.0 as net_sales
		FROM orders
		WHERE status = 1 AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
	`, start, end).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) GetPaymentTotals(ctx context.Context, from, to time.Time) ([]domainRepo.PaymentTotalsResult, error) {
	var rows []struct {
		PaymentMethod int
		Count         int
		Amount        float64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			payment_method,
			COUNT(id) as count,
			COALESCE(SUM(total), 0) / 100.0 as amount
		FROM orders
		WHERE status = 1 AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
		GROUP BY payment_method
		ORDER BY amount DESC
	`, from, to).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	results := make([]domainRepo.PaymentTotalsResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, domainRepo.PaymentTotalsResult{
			Method: paymentMethodName(row.PaymentMethod),
			Count:  row.Count,
			Amount: row.Amount,
		})
	}
	return results, nil
}

func paymentMethodName(m int) string {
	names := [...]string{"Cash", "Card", "Mobile", "Other"}
	if m < 0 || m >= len(names) {
		return "Other"
	}
	return names[m]
}

func (r *analyticsRepository) GetTopItems(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopItemResult, error) {
	var results []domainRepo.TopItemResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.name as name,
			COALESCE(SUM(oi.quantity), 0) as quantity_sold,
			COALESCE(SUM(oi.total), 0) / 100.0 as revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = 1 AND o.deleted_at IS NULL
		AND o.created_at >= ? AND o.created_at < ?
		GROUP BY oi.name
		ORDER BY revenue DESC
		LIMIT ?
	`, from, to, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesByDay(ctx context.Context, from, to time.Time) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE_TRUNC('day', created_at) as date,
			COUNT(id) as orders,
			COALESCE(SUM(total), 0) / 100.0 as revenue
		FROM orders
		WHERE status = 1 AND deleted_at IS NULL
		AND created_at >= ? AND created_at < ?
		GROUP BY DATE_TRUNC('day', created_at)
		ORDER BY date ASC
	`, from, to).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}
