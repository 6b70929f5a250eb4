package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
)

// TrendConfig holds the thresholds used to classify price and margin
// movement. Deltas inside the threshold band count as stable.
type TrendConfig struct {
	// MarginThresholdPts is the margin movement, in percentage points,
	// below which a margin trend is considered stable.
	MarginThresholdPts float64
	// CostThresholdPct is the cost movement, in percent of the starting
	// cost, below which a cost trend is considered stable.
	CostThresholdPct float64
	// ErosionWindowDays is the lookback window for margin erosion alerts.
	ErosionWindowDays int
}

// DefaultTrendConfig returns the stock thresholds.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{
		MarginThresholdPts: 2.0,
		CostThresholdPct:   5.0,
		ErosionWindowDays:  90,
	}
}

// Trend direction labels
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
	TrendRising    = "rising"
	TrendFalling   = "falling"
)

// MarginTrendResult describes how a product's margin moved over a window.
// The aggregate fields cover the sampled margins, which end at the current
// live value.
type MarginTrendResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Days          int       `json:"days"`
	SampleCount   int       `json:"sample_count"`
	FirstMargin   float64   `json:"first_margin"`
	LastMargin    float64   `json:"last_margin"`
	AverageMargin float64   `json:"average_margin"`
	MinMargin     float64   `json:"min_margin"`
	MaxMargin     float64   `json:"max_margin"`
	DeltaPts      float64   `json:"delta_pts"`
	Direction     string    `json:"direction"`
}

// CostTrendResult describes how a product's cost price moved over a window.
// Aggregates are over the sampled costs, in currency units like the first
// and last cost.
type CostTrendResult struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Days          int       `json:"days"`
	SampleCount   int       `json:"sample_count"`
	FirstCost     float64   `json:"first_cost"`
	LastCost      float64   `json:"last_cost"`
	AverageCost   float64   `json:"average_cost"`
	MinCost       float64   `json:"min_cost"`
	MaxCost       float64   `json:"max_cost"`
	ChangePercent float64   `json:"change_percent"`
	Direction     string    `json:"direction"`
}

// MarginErosionAlert flags a product whose margin fell by at least the
// threshold inside the erosion window
type MarginErosionAlert struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SKU           string    `json:"sku"`
	FirstMargin   float64   `json:"first_margin"`
	CurrentMargin float64   `json:"current_margin"`
	DeltaPts      float64   `json:"delta_pts"`
	ChangeCount   int       `json:"change_count"`
	WindowDays    int       `json:"window_days"`
}

// PriceChangeEntry is one recorded price change inside a volatility report.
// Prices are in currency units.
type PriceChangeEntry struct {
	ProductID     uuid.UUID            `json:"product_id"`
	ProductName   string               `json:"product_name"`
	SKU           string               `json:"sku"`
	ChangeType    enum.PriceChangeType `json:"change_type"`
	OldPrice      float64              `json:"old_price"`
	NewPrice      float64              `json:"new_price"`
	ChangePercent float64              `json:"change_percent"`
	ChangedAt     time.Time            `json:"changed_at"`
}

// PriceVolatilityReport summarizes price movement across every product in a
// window: overall counts and average absolute change, plus the largest
// single increases and decreases.
type PriceVolatilityReport struct {
	Days             int                `json:"days"`
	ChangeCount      int                `json:"change_count"`
	ProductCount     int                `json:"product_count"`
	AverageAbsChange float64            `json:"average_abs_change_percent"`
	TopIncreases     []PriceChangeEntry `json:"top_increases"`
	TopDecreases     []PriceChangeEntry `json:"top_decreases"`
}

// PriceHistoryService records product price changes and derives trends
// from the append-only log.
type PriceHistoryService struct {
	historyRepo repository.PriceHistoryRepository
	productRepo repository.ProductRepository
	cfg         TrendConfig
	now         func() time.Time
}

// NewPriceHistoryService creates a new price history service
func NewPriceHistoryService(
	historyRepo repository.PriceHistoryRepository,
	productRepo repository.ProductRepository,
	cfg TrendConfig,
) *PriceHistoryService {
	return &PriceHistoryService{
		historyRepo: historyRepo,
		productRepo: productRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// marginPts computes the gross margin percentage from cent prices. The
// second return is false when the selling price is zero.
func marginPts(sellingCents, costCents int64) (float64, bool) {
	if sellingCents == 0 {
		return 0, false
	}
	selling := decimal.NewFromInt(sellingCents)
	cost := decimal.NewFromInt(costCents)
	m, _ := selling.Sub(cost).Div(selling).Mul(decimal.NewFromInt(100)).Float64()
	return m, true
}

// changePercent computes the relative change from old to new in percent.
// Returns zero when the old price was zero.
func changePercent(oldCents, newCents int64) float64 {
	if oldCents == 0 {
		return 0
	}
	oldP := decimal.NewFromInt(oldCents)
	newP := decimal.NewFromInt(newCents)
	pct, _ := newP.Sub(oldP).Div(oldP).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func marginPtr(sellingCents, costCents int64) *float64 {
	if m, ok := marginPts(sellingCents, costCents); ok {
		return &m
	}
	return nil
}

func deltaPtr(oldM, newM *float64) *float64 {
	if oldM == nil || newM == nil {
		return nil
	}
	d := *newM - *oldM
	return &d
}

func (s *PriceHistoryService) record(ctx context.Context, product *entity.Product, changeType enum.PriceChangeType, oldPrice, newPrice int64, oldMargin, newMargin *float64, reason *string) error {
	return s.historyRepo.Create(ctx, &entity.PriceHistory{
		ProductID:     product.ID,
		ChangeType:    changeType,
		OldPrice:      oldPrice,
		NewPrice:      newPrice,
		ChangePercent: changePercent(oldPrice, newPrice),
		OldMargin:     oldMargin,
		NewMargin:     newMargin,
		MarginDelta:   deltaPtr(oldMargin, newMargin),
		Reason:        reason,
		ChangedAt:     s.now(),
	})
}

// RecordSellingPriceChange appends a selling price change for a product.
// The product must already carry its new prices; the old values are passed
// explicitly.
func (s *PriceHistoryService) RecordSellingPriceChange(ctx context.Context, product *entity.Product, oldSelling, oldCost int64, reason *string) error {
	oldMargin := marginPtr(oldSelling, oldCost)
	newMargin := marginPtr(product.SellingPrice, product.CostPrice)
	return s.record(ctx, product, enum.PriceChangeSelling, oldSelling, product.SellingPrice, oldMargin, newMargin, reason)
}

// RecordCostPriceChange appends a cost price change for a product.
func (s *PriceHistoryService) RecordCostPriceChange(ctx context.Context, product *entity.Product, oldCost, oldSelling int64, reason *string) error {
	oldMargin := marginPtr(oldSelling, oldCost)
	newMargin := marginPtr(product.SellingPrice, product.CostPrice)
	return s.record(ctx, product, enum.PriceChangeCost, oldCost, product.CostPrice, oldMargin, newMargin, reason)
}

// GetProductHistory returns a product's raw price change log.
func (s *PriceHistoryService) GetProductHistory(ctx context.Context, productID uuid.UUID, changeType *enum.PriceChangeType, days int) ([]entity.PriceHistory, error) {
	if _, err := s.getProduct(ctx, productID); err != nil {
		return nil, err
	}
	params := &repository.PriceHistoryFilterParams{ChangeType: changeType}
	if days > 0 {
		since := s.now().AddDate(0, 0, -days)
		params.Since = &since
	}
	return s.historyRepo.ListByProduct(ctx, productID, params)
}

func (s *PriceHistoryService) getProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetMarginTrend classifies a product's margin movement over the last
// `days` days. With fewer than two margin samples in the window, the
// current margin stands in for both ends and the trend is stable.
func (s *PriceHistoryService) GetMarginTrend(ctx context.Context, productID uuid.UUID, days int) (*MarginTrendResult, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	records, err := s.historyRepo.ListByProduct(ctx, productID, &repository.PriceHistoryFilterParams{Since: &since})
	if err != nil {
		return nil, err
	}

	samples := make([]float64, 0, len(records)+1)
	for _, rec := range records {
		if rec.NewMargin != nil {
			samples = append(samples, *rec.NewMargin)
		}
	}
	if len(samples) == 0 {
		current, _ := product.Margin()
		samples = append(samples, current)
	}

	first := samples[0]
	last := samples[len(samples)-1]
	// A record's OldMargin is the state before the first change in the
	// window; prefer it as the starting point when present.
	if len(records) > 0 && records[0].OldMargin != nil {
		first = *records[0].OldMargin
	}

	average, min, max := aggregate(samples)
	delta := last - first
	direction := TrendStable
	switch {
	case delta > s.cfg.MarginThresholdPts:
		direction = TrendImproving
	case delta < -s.cfg.MarginThresholdPts:
		direction = TrendDeclining
	}

	return &MarginTrendResult{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Days:          days,
		SampleCount:   len(samples),
		FirstMargin:   first,
		LastMargin:    last,
		AverageMargin: average,
		MinMargin:     min,
		MaxMargin:     max,
		DeltaPts:      delta,
		Direction:     direction,
	}, nil
}

// aggregate returns the average, minimum and maximum of a non-empty sample
// set.
func aggregate(samples []float64) (average, min, max float64) {
	min = samples[0]
	max = samples[0]
	var sum float64
	for _, v := range samples {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(samples)), min, max
}

// GetCostTrend classifies a product's cost price movement over the last
// `days` days.
func (s *PriceHistoryService) GetCostTrend(ctx context.Context, productID uuid.UUID, days int) (*CostTrendResult, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -days)
	costType := enum.PriceChangeCost
	records, err := s.historyRepo.ListByProduct(ctx, productID, &repository.PriceHistoryFilterParams{
		ChangeType: &costType,
		Since:      &since,
	})
	if err != nil {
		return nil, err
	}

	firstCost := product.CostPrice
	lastCost := product.CostPrice
	samples := make([]float64, 0, len(records)+1)
	for _, rec := range records {
		samples = append(samples, float64(rec.NewPrice)/100)
	}
	if len(records) > 0 {
		firstCost = records[0].OldPrice
		lastCost = records[len(records)-1].NewPrice
	} else {
		samples = append(samples, float64(product.CostPrice)/100)
	}

	average, min, max := aggregate(samples)
	pct := changePercent(firstCost, lastCost)
	direction := TrendStable
	switch {
	case pct > s.cfg.CostThresholdPct:
		direction = TrendRising
	case pct < -s.cfg.CostThresholdPct:
		direction = TrendFalling
	}

	return &CostTrendResult{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Days:          days,
		SampleCount:   len(samples),
		FirstCost:     float64(firstCost) / 100,
		LastCost:      float64(lastCost) / 100,
		AverageCost:   average,
		MinCost:       min,
		MaxCost:       max,
		ChangePercent: pct,
		Direction:     direction,
	}, nil
}

// GetMarginErosionAlerts returns products whose margin fell by at least
// `threshold` points inside the erosion window, worst first. A threshold of
// zero or less falls back to the configured margin threshold.
func (s *PriceHistoryService) GetMarginErosionAlerts(ctx context.Context, threshold float64) ([]MarginErosionAlert, error) {
	if threshold <= 0 {
		threshold = s.cfg.MarginThresholdPts
	}
	since := s.now().AddDate(0, 0, -s.cfg.ErosionWindowDays)
	records, err := s.historyRepo.ListSince(ctx, since, nil)
	if err != nil {
		return nil, err
	}

	type window struct {
		first *float64
		last  *float64
		count int
	}
	byProduct := make(map[uuid.UUID]*window)
	order := make([]uuid.UUID, 0)
	for _, rec := range records {
		w, ok := byProduct[rec.ProductID]
		if !ok {
			w = &window{first: rec.OldMargin}
			byProduct[rec.ProductID] = w
			order = append(order, rec.ProductID)
		}
		if rec.NewMargin != nil {
			w.last = rec.NewMargin
		}
		w.count++
	}

	alerts := make([]MarginErosionAlert, 0)
	for _, productID := range order {
		w := byProduct[productID]
		if w.first == nil || w.last == nil {
			continue
		}
		delta := *w.last - *w.first
		if -delta < threshold {
			continue
		}
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		alerts = append(alerts, MarginErosionAlert{
			ProductID:     productID,
			ProductName:   product.Name,
			SKU:           product.SKU,
			FirstMargin:   *w.first,
			CurrentMargin: *w.last,
			DeltaPts:      delta,
			ChangeCount:   w.count,
			WindowDays:    s.cfg.ErosionWindowDays,
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].DeltaPts < alerts[j].DeltaPts
	})
	return alerts, nil
}

// GetPriceVolatilityReport aggregates price movement across every product
// over the last `days` days: overall change count, distinct products and
// average absolute percent change, plus the `limit` largest single increases
// and decreases.
func (s *PriceHistoryService) GetPriceVolatilityReport(ctx context.Context, days, limit int) (*PriceVolatilityReport, error) {
	if limit <= 0 {
		limit = 10
	}
	since := s.now().AddDate(0, 0, -days)
	records, err := s.historyRepo.ListSince(ctx, since, nil)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*entity.Product)
	lookup := func(id uuid.UUID) (*entity.Product, error) {
		if p, ok := products[id]; ok {
			return p, nil
		}
		p, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		products[id] = p
		return p, nil
	}

	report := &PriceVolatilityReport{
		Days:         days,
		TopIncreases: []PriceChangeEntry{},
		TopDecreases: []PriceChangeEntry{},
	}
	seen := make(map[uuid.UUID]bool)
	entries := make([]PriceChangeEntry, 0, len(records))
	var totalAbs float64
	for _, rec := range records {
		product, err := lookup(rec.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		abs := rec.ChangePercent
		if abs < 0 {
			abs = -abs
		}
		report.ChangeCount++
		totalAbs += abs
		seen[rec.ProductID] = true
		entries = append(entries, PriceChangeEntry{
			ProductID:     rec.ProductID,
			ProductName:   product.Name,
			SKU:           product.SKU,
			ChangeType:    rec.ChangeType,
			OldPrice:      float64(rec.OldPrice) / 100,
			NewPrice:      float64(rec.NewPrice) / 100,
			ChangePercent: rec.ChangePercent,
			ChangedAt:     rec.ChangedAt,
		})
	}
	report.ProductCount = len(seen)
	if report.ChangeCount > 0 {
		report.AverageAbsChange = totalAbs / float64(report.ChangeCount)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangePercent > entries[j].ChangePercent
	})
	for _, e := range entries {
		if e.ChangePercent <= 0 || len(report.TopIncreases) == limit {
			break
		}
		report.TopIncreases = append(report.TopIncreases, e)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.ChangePercent >= 0 || len(report.TopDecreases) == limit {
			break
		}
		report.TopDecreases = append(report.TopDecreases, e)
	}
	return report, nil
}
