package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
)

// fakePriceHistoryRepo is an in-memory append-only log. Records are kept in
// insertion order, which tests arrange to be ChangedAt ascending.
type fakePriceHistoryRepo struct {
	records []entity.PriceHistory
}

func (f *fakePriceHistoryRepo) Create(_ context.Context, record *entity.PriceHistory) error {
	f.records = append(f.records, *record)
	return nil
}

func (f *fakePriceHistoryRepo) ListByProduct(_ context.Context, productID uuid.UUID, params *repository.PriceHistoryFilterParams) ([]entity.PriceHistory, error) {
	var out []entity.PriceHistory
	for _, rec := range f.records {
		if rec.ProductID != productID {
			continue
		}
		if params != nil {
			if params.ChangeType != nil && rec.ChangeType != *params.ChangeType {
				continue
			}
			if params.Since != nil && rec.ChangedAt.Before(*params.Since) {
				continue
			}
			if params.Until != nil && rec.ChangedAt.After(*params.Until) {
				continue
			}
		}
		out = append(out, rec)
	}
	if params != nil && params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

func (f *fakePriceHistoryRepo) ListSince(_ context.Context, since time.Time, changeType *enum.PriceChangeType) ([]entity.PriceHistory, error) {
	var out []entity.PriceHistory
	for _, rec := range f.records {
		if rec.ChangedAt.Before(since) {
			continue
		}
		if changeType != nil && rec.ChangeType != *changeType {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// fakeProductRepo serves GetByID lookups from a map. Update fails with
// updateErr when set; the remaining operations are inert.
type fakeProductRepo struct {
	products  map[uuid.UUID]*entity.Product
	updateErr error
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) Create(context.Context, *entity.Product) error { return nil }
func (f *fakeProductRepo) GetByIDs(context.Context, []uuid.UUID) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetBySKU(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(context.Context, *entity.Product) error { return f.updateErr }
func (f *fakeProductRepo) Delete(context.Context, uuid.UUID) error       { return nil }
func (f *fakeProductRepo) List(context.Context, *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return nil, 0, nil
}
func (f *fakeProductRepo) ListActive(context.Context) ([]entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) GetLowStock(context.Context) ([]entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) UpdateQuantity(context.Context, uuid.UUID, int) error  { return nil }
func (f *fakeProductRepo) AtomicDecrementBatch(context.Context, map[uuid.UUID]int) ([]uuid.UUID, error) {
	return nil, nil
}
func (f *fakeProductRepo) AtomicIncrementBatch(context.Context, map[uuid.UUID]int) error {
	return nil
}

var trendTestTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTrendFixture(products ...*entity.Product) (*PriceHistoryService, *fakePriceHistoryRepo) {
	historyRepo := &fakePriceHistoryRepo{}
	productRepo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	svc := NewPriceHistoryService(historyRepo, productRepo, DefaultTrendConfig())
	svc.now = func() time.Time { return trendTestTime }
	return svc, historyRepo
}

func trendTestProduct(name string, sellingCents, costCents int64) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		SKU:          "SKU-" + name,
		SellingPrice: sellingCents,
		CostPrice:    costCents,
		IsActive:     true,
	}
}

func fptr(v float64) *float64 { return &v }

func daysAgo(n int) time.Time { return trendTestTime.AddDate(0, 0, -n) }

func TestRecordSellingPriceChange(t *testing.T) {
	product := trendTestProduct("Espresso", 12000, 6000)
	svc, historyRepo := newTrendFixture(product)

	// New prices already on the product, old values passed explicitly.
	if err := svc.RecordSellingPriceChange(context.Background(), product, 10000, 6000, nil); err != nil {
		t.Fatalf("RecordSellingPriceChange: %v", err)
	}

	if len(historyRepo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(historyRepo.records))
	}
	rec := historyRepo.records[0]
	if rec.ChangeType != enum.PriceChangeSelling {
		t.Errorf("ChangeType = %v, want selling", rec.ChangeType)
	}
	if rec.OldPrice != 10000 || rec.NewPrice != 12000 {
		t.Errorf("prices = %d -> %d, want 10000 -> 12000", rec.OldPrice, rec.NewPrice)
	}
	if rec.ChangePercent != 20 {
		t.Errorf("ChangePercent = %v, want 20", rec.ChangePercent)
	}
	if rec.OldMargin == nil || *rec.OldMargin != 40 {
		t.Errorf("OldMargin = %v, want 40", rec.OldMargin)
	}
	if rec.NewMargin == nil || *rec.NewMargin != 50 {
		t.Errorf("NewMargin = %v, want 50", rec.NewMargin)
	}
	if rec.MarginDelta == nil || *rec.MarginDelta != 10 {
		t.Errorf("MarginDelta = %v, want 10", rec.MarginDelta)
	}
	if !rec.ChangedAt.Equal(trendTestTime) {
		t.Errorf("ChangedAt = %v, want %v", rec.ChangedAt, trendTestTime)
	}
}

func TestRecordChangeZeroSellingPrice(t *testing.T) {
	// A product not yet priced for sale has no meaningful margin.
	product := trendTestProduct("Unpriced", 0, 5600)
	svc, historyRepo := newTrendFixture(product)

	if err := svc.RecordCostPriceChange(context.Background(), product, 5000, 0, nil); err != nil {
		t.Fatalf("RecordCostPriceChange: %v", err)
	}

	rec := historyRepo.records[0]
	if rec.OldMargin != nil || rec.NewMargin != nil || rec.MarginDelta != nil {
		t.Errorf("margins = %v/%v/%v, want all nil", rec.OldMargin, rec.NewMargin, rec.MarginDelta)
	}
	if rec.ChangePercent != 12 {
		t.Errorf("ChangePercent = %v, want 12", rec.ChangePercent)
	}
}

func TestMarginTrendDeclining(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 7000)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(35), ChangedAt: daysAgo(20)},
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(35), NewMargin: fptr(30), ChangedAt: daysAgo(5)},
	}

	trend, err := svc.GetMarginTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetMarginTrend: %v", err)
	}
	if trend.Direction != TrendDeclining {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendDeclining)
	}
	if trend.FirstMargin != 40 || trend.LastMargin != 30 {
		t.Errorf("margins = %v -> %v, want 40 -> 30", trend.FirstMargin, trend.LastMargin)
	}
	if trend.DeltaPts != -10 {
		t.Errorf("DeltaPts = %v, want -10", trend.DeltaPts)
	}
	if trend.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", trend.SampleCount)
	}
	if trend.AverageMargin != 32.5 {
		t.Errorf("AverageMargin = %v, want 32.5", trend.AverageMargin)
	}
	if trend.MinMargin != 30 || trend.MaxMargin != 35 {
		t.Errorf("min/max = %v/%v, want 30/35", trend.MinMargin, trend.MaxMargin)
	}
}

func TestMarginTrendImproving(t *testing.T) {
	product := trendTestProduct("Espresso", 12000, 6000)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeSelling, OldMargin: fptr(40), NewMargin: fptr(50), ChangedAt: daysAgo(3)},
	}

	trend, err := svc.GetMarginTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetMarginTrend: %v", err)
	}
	if trend.Direction != TrendImproving {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendImproving)
	}
	if trend.DeltaPts != 10 {
		t.Errorf("DeltaPts = %v, want 10", trend.DeltaPts)
	}
}

func TestMarginTrendThresholdIsExclusive(t *testing.T) {
	// A move of exactly the threshold still counts as stable.
	product := trendTestProduct("Espresso", 10000, 5800)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(42), ChangedAt: daysAgo(2)},
	}

	trend, err := svc.GetMarginTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetMarginTrend: %v", err)
	}
	if trend.Direction != TrendStable {
		t.Errorf("Direction = %q, want %q (delta %v)", trend.Direction, TrendStable, trend.DeltaPts)
	}
}

func TestMarginTrendNoHistory(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 6000)
	svc, _ := newTrendFixture(product)

	trend, err := svc.GetMarginTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetMarginTrend: %v", err)
	}
	// No records in the window: the current margin stands in for both ends.
	if trend.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", trend.SampleCount)
	}
	if trend.FirstMargin != 40 || trend.LastMargin != 40 {
		t.Errorf("margins = %v -> %v, want 40 -> 40", trend.FirstMargin, trend.LastMargin)
	}
	if trend.AverageMargin != 40 || trend.MinMargin != 40 || trend.MaxMargin != 40 {
		t.Errorf("aggregates = %v/%v/%v, want the current margin for all three",
			trend.AverageMargin, trend.MinMargin, trend.MaxMargin)
	}
	if trend.Direction != TrendStable {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendStable)
	}
}

func TestMarginTrendIgnoresRecordsOutsideWindow(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 6500)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(60), NewMargin: fptr(50), ChangedAt: daysAgo(200)},
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(35), ChangedAt: daysAgo(10)},
	}

	trend, err := svc.GetMarginTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetMarginTrend: %v", err)
	}
	if trend.FirstMargin != 40 {
		t.Errorf("FirstMargin = %v, want 40 (old record should be excluded)", trend.FirstMargin)
	}
	if trend.SampleCount != 1 {
		t.Errorf("SampleCount = %d, want 1", trend.SampleCount)
	}
}

func TestMarginTrendUnknownProduct(t *testing.T) {
	svc, _ := newTrendFixture()

	_, err := svc.GetMarginTrend(context.Background(), uuid.New(), 30)
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	appErr := apperror.GetAppError(err)
	if appErr == nil || appErr.Code != apperror.ErrNotFound.Code {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestCostTrendRising(t *testing.T) {
	product := trendTestProduct("Beans 1kg", 9000, 5600)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldPrice: 5000, NewPrice: 5300, ChangedAt: daysAgo(40)},
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldPrice: 5300, NewPrice: 5600, ChangedAt: daysAgo(10)},
		// Selling changes must not count toward the cost trend.
		{ProductID: product.ID, ChangeType: enum.PriceChangeSelling, OldPrice: 8000, NewPrice: 9000, ChangedAt: daysAgo(9)},
	}

	trend, err := svc.GetCostTrend(context.Background(), product.ID, 60)
	if err != nil {
		t.Fatalf("GetCostTrend: %v", err)
	}
	if trend.Direction != TrendRising {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendRising)
	}
	if trend.FirstCost != 50 || trend.LastCost != 56 {
		t.Errorf("costs = %v -> %v, want 50 -> 56", trend.FirstCost, trend.LastCost)
	}
	if trend.ChangePercent != 12 {
		t.Errorf("ChangePercent = %v, want 12", trend.ChangePercent)
	}
	if trend.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", trend.SampleCount)
	}
	if trend.AverageCost != 54.5 {
		t.Errorf("AverageCost = %v, want 54.5", trend.AverageCost)
	}
	if trend.MinCost != 53 || trend.MaxCost != 56 {
		t.Errorf("min/max = %v/%v, want 53/56", trend.MinCost, trend.MaxCost)
	}
}

func TestCostTrendFalling(t *testing.T) {
	product := trendTestProduct("Beans 1kg", 9000, 4500)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, OldPrice: 5000, NewPrice: 4500, ChangedAt: daysAgo(10)},
	}

	trend, err := svc.GetCostTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetCostTrend: %v", err)
	}
	if trend.Direction != TrendFalling {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendFalling)
	}
	if trend.ChangePercent != -10 {
		t.Errorf("ChangePercent = %v, want -10", trend.ChangePercent)
	}
}

func TestCostTrendNoHistory(t *testing.T) {
	product := trendTestProduct("Beans 1kg", 9000, 5000)
	svc, _ := newTrendFixture(product)

	trend, err := svc.GetCostTrend(context.Background(), product.ID, 30)
	if err != nil {
		t.Fatalf("GetCostTrend: %v", err)
	}
	if trend.Direction != TrendStable {
		t.Errorf("Direction = %q, want %q", trend.Direction, TrendStable)
	}
	if trend.FirstCost != 50 || trend.LastCost != 50 {
		t.Errorf("costs = %v -> %v, want current cost on both ends", trend.FirstCost, trend.LastCost)
	}
	if trend.AverageCost != 50 || trend.MinCost != 50 || trend.MaxCost != 50 {
		t.Errorf("aggregates = %v/%v/%v, want the current cost for all three",
			trend.AverageCost, trend.MinCost, trend.MaxCost)
	}
	if trend.ChangePercent != 0 {
		t.Errorf("ChangePercent = %v, want 0", trend.ChangePercent)
	}
}

func TestMarginErosionAlerts(t *testing.T) {
	worst := trendTestProduct("Worst", 10000, 6800)
	mild := trendTestProduct("Mild", 10000, 6300)
	steady := trendTestProduct("Steady", 10000, 6100)
	svc, historyRepo := newTrendFixture(worst, mild, steady)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: worst.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(36), ChangedAt: daysAgo(60)},
		{ProductID: worst.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(36), NewMargin: fptr(32), ChangedAt: daysAgo(30)},
		{ProductID: mild.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(37), ChangedAt: daysAgo(20)},
		// A one point dip stays inside the stable band.
		{ProductID: steady.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(39), ChangedAt: daysAgo(10)},
	}

	// Zero threshold falls back to the configured margin threshold.
	alerts, err := svc.GetMarginErosionAlerts(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetMarginErosionAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].ProductID != worst.ID {
		t.Errorf("worst decline should sort first, got %s", alerts[0].ProductName)
	}
	if alerts[0].DeltaPts != -8 {
		t.Errorf("DeltaPts = %v, want -8", alerts[0].DeltaPts)
	}
	if alerts[0].ChangeCount != 2 {
		t.Errorf("ChangeCount = %d, want 2", alerts[0].ChangeCount)
	}
	if alerts[0].WindowDays != 90 {
		t.Errorf("WindowDays = %d, want 90", alerts[0].WindowDays)
	}
	if alerts[1].ProductID != mild.ID {
		t.Errorf("second alert should be %s, got %s", mild.Name, alerts[1].ProductName)
	}
}

func TestMarginErosionAlertsCallerThreshold(t *testing.T) {
	worst := trendTestProduct("Worst", 10000, 6800)
	exact := trendTestProduct("Exact", 10000, 6500)
	mild := trendTestProduct("Mild", 10000, 6300)
	svc, historyRepo := newTrendFixture(worst, exact, mild)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: worst.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(32), ChangedAt: daysAgo(30)},
		// A drop of exactly the threshold still alerts.
		{ProductID: exact.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(35), ChangedAt: daysAgo(20)},
		{ProductID: mild.ID, ChangeType: enum.PriceChangeCost, OldMargin: fptr(40), NewMargin: fptr(37), ChangedAt: daysAgo(10)},
	}

	alerts, err := svc.GetMarginErosionAlerts(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetMarginErosionAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts at threshold 5, got %d", len(alerts))
	}
	if alerts[0].ProductID != worst.ID || alerts[1].ProductID != exact.ID {
		t.Errorf("alerts = %s, %s; want Worst, Exact", alerts[0].ProductName, alerts[1].ProductName)
	}
}

func TestMarginErosionAlertsEmptyWindow(t *testing.T) {
	svc, _ := newTrendFixture()

	alerts, err := svc.GetMarginErosionAlerts(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetMarginErosionAlerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}

func TestPriceVolatilityReport(t *testing.T) {
	jumpy := trendTestProduct("Jumpy", 10000, 5000)
	calm := trendTestProduct("Calm", 10000, 5000)
	svc, historyRepo := newTrendFixture(jumpy, calm)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: jumpy.ID, ChangeType: enum.PriceChangeCost, OldPrice: 5000, NewPrice: 5500, ChangePercent: 10, ChangedAt: daysAgo(25)},
		{ProductID: jumpy.ID, ChangeType: enum.PriceChangeCost, OldPrice: 5500, NewPrice: 4675, ChangePercent: -15, ChangedAt: daysAgo(15)},
		{ProductID: jumpy.ID, ChangeType: enum.PriceChangeSelling, OldPrice: 10000, NewPrice: 10500, ChangePercent: 5, ChangedAt: daysAgo(5)},
		{ProductID: calm.ID, ChangeType: enum.PriceChangeSelling, OldPrice: 10000, NewPrice: 9800, ChangePercent: -2, ChangedAt: daysAgo(3)},
	}

	report, err := svc.GetPriceVolatilityReport(context.Background(), 30, 10)
	if err != nil {
		t.Fatalf("GetPriceVolatilityReport: %v", err)
	}
	if report.ChangeCount != 4 {
		t.Errorf("ChangeCount = %d, want 4", report.ChangeCount)
	}
	if report.ProductCount != 2 {
		t.Errorf("ProductCount = %d, want 2", report.ProductCount)
	}
	// (10 + 15 + 5 + 2) / 4
	if report.AverageAbsChange != 8 {
		t.Errorf("AverageAbsChange = %v, want 8", report.AverageAbsChange)
	}
	if len(report.TopIncreases) != 2 {
		t.Fatalf("expected 2 increases, got %d", len(report.TopIncreases))
	}
	if report.TopIncreases[0].ChangePercent != 10 || report.TopIncreases[1].ChangePercent != 5 {
		t.Errorf("increases = %v, %v; want 10, 5",
			report.TopIncreases[0].ChangePercent, report.TopIncreases[1].ChangePercent)
	}
	if report.TopIncreases[0].ProductName != "Jumpy" {
		t.Errorf("largest increase product = %s, want Jumpy", report.TopIncreases[0].ProductName)
	}
	if len(report.TopDecreases) != 2 {
		t.Fatalf("expected 2 decreases, got %d", len(report.TopDecreases))
	}
	if report.TopDecreases[0].ChangePercent != -15 || report.TopDecreases[1].ChangePercent != -2 {
		t.Errorf("decreases = %v, %v; want -15, -2",
			report.TopDecreases[0].ChangePercent, report.TopDecreases[1].ChangePercent)
	}
	if report.TopDecreases[0].OldPrice != 55 || report.TopDecreases[0].NewPrice != 46.75 {
		t.Errorf("largest decrease prices = %v -> %v, want 55 -> 46.75",
			report.TopDecreases[0].OldPrice, report.TopDecreases[0].NewPrice)
	}
}

func TestPriceVolatilityReportListLimit(t *testing.T) {
	a := trendTestProduct("A", 10000, 5000)
	b := trendTestProduct("B", 10000, 5000)
	c := trendTestProduct("C", 10000, 5000)
	svc, historyRepo := newTrendFixture(a, b, c)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: a.ID, ChangeType: enum.PriceChangeCost, ChangePercent: 30, ChangedAt: daysAgo(5)},
		{ProductID: b.ID, ChangeType: enum.PriceChangeCost, ChangePercent: 20, ChangedAt: daysAgo(5)},
		{ProductID: c.ID, ChangeType: enum.PriceChangeCost, ChangePercent: 10, ChangedAt: daysAgo(5)},
	}

	report, err := svc.GetPriceVolatilityReport(context.Background(), 30, 2)
	if err != nil {
		t.Fatalf("GetPriceVolatilityReport: %v", err)
	}
	// The limit caps the lists, not the window-wide counts.
	if report.ChangeCount != 3 {
		t.Errorf("ChangeCount = %d, want 3", report.ChangeCount)
	}
	if len(report.TopIncreases) != 2 {
		t.Fatalf("expected 2 increases at limit 2, got %d", len(report.TopIncreases))
	}
	if report.TopIncreases[0].ProductID != a.ID || report.TopIncreases[1].ProductID != b.ID {
		t.Errorf("increases out of order: %s, %s",
			report.TopIncreases[0].ProductName, report.TopIncreases[1].ProductName)
	}
	if len(report.TopDecreases) != 0 {
		t.Errorf("expected no decreases, got %d", len(report.TopDecreases))
	}
}

func TestGetProductHistoryFiltersByType(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 5000)
	svc, historyRepo := newTrendFixture(product)
	historyRepo.records = []entity.PriceHistory{
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, ChangedAt: daysAgo(15)},
		{ProductID: product.ID, ChangeType: enum.PriceChangeSelling, ChangedAt: daysAgo(10)},
		{ProductID: product.ID, ChangeType: enum.PriceChangeCost, ChangedAt: daysAgo(5)},
	}

	costType := enum.PriceChangeCost
	records, err := svc.GetProductHistory(context.Background(), product.ID, &costType, 30)
	if err != nil {
		t.Fatalf("GetProductHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 cost records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.ChangeType != enum.PriceChangeCost {
			t.Errorf("unexpected change type %v", rec.ChangeType)
		}
	}
}
