package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/pagination"
)

type fakeCategoryRepo struct{}

func (f *fakeCategoryRepo) Create(context.Context, *entity.Category) error { return nil }
func (f *fakeCategoryRepo) GetByID(context.Context, uuid.UUID) (*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) GetBySlug(context.Context, string) (*entity.Category, error) {
	return nil, nil
}
func (f *fakeCategoryRepo) Update(context.Context, *entity.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (f *fakeCategoryRepo) List(context.Context, *pagination.PaginationParams, string) ([]entity.Category, int64, error) {
	return nil, 0, nil
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newProductFixture(products ...*entity.Product) (*ProductService, *fakeProductRepo, *fakePriceHistoryRepo) {
	historyRepo := &fakePriceHistoryRepo{}
	productRepo := &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		productRepo.products[p.ID] = p
	}
	priceHistory := NewPriceHistoryService(historyRepo, productRepo, DefaultTrendConfig())
	priceHistory.now = func() time.Time { return trendTestTime }
	svc := NewProductService(productRepo, &fakeCategoryRepo{}, priceHistory)
	return svc, productRepo, historyRepo
}

func TestUpdateProductRecordsPriceHistory(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 5000)
	svc, _, historyRepo := newProductFixture(product)

	newSelling := 120.0
	_, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{
		SellingPrice: &newSelling,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if len(historyRepo.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(historyRepo.records))
	}
	rec := historyRepo.records[0]
	if rec.ChangeType != enum.PriceChangeSelling {
		t.Errorf("ChangeType = %v, want selling", rec.ChangeType)
	}
	if rec.OldPrice != 10000 || rec.NewPrice != 12000 {
		t.Errorf("prices = %d -> %d, want 10000 -> 12000", rec.OldPrice, rec.NewPrice)
	}
}

func TestUpdateProductFailedSaveLeavesNoHistory(t *testing.T) {
	product := trendTestProduct("Espresso", 10000, 5000)
	svc, productRepo, historyRepo := newProductFixture(product)
	productRepo.updateErr = errors.New("connection reset")

	newSelling := 120.0
	_, err := svc.UpdateProduct(context.Background(), product.ID, &UpdateProductInput{
		SellingPrice: &newSelling,
	})
	if err == nil {
		t.Fatal("expected error when the product save fails")
	}

	// A change that was never persisted must not appear in the log.
	if len(historyRepo.records) != 0 {
		t.Errorf("expected no history records after a failed save, got %d", len(historyRepo.records))
	}
}
