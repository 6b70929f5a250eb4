package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	domainRepo "github.com/tillpoint/pos-api/internal/domain/repository"
)

type priceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository creates a new price history repository
func NewPriceHistoryRepository(db *gorm.DB) domainRepo.PriceHistoryRepository {
	return &priceHistoryRepository{db: db}
}

func (r *priceHistoryRepository) Create(ctx context.Context, record *entity.PriceHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *priceHistoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *domainRepo.PriceHistoryFilterParams) ([]entity.PriceHistory, error) {
	var records []entity.PriceHistory

	query := r.db.WithContext(ctx).Model(&entity.PriceHistory{}).
		Where("product_id = ?", productID)

	if params != nil {
		if params.ChangeType != nil {
			query = query.Where("change_type = ?", *params.ChangeType)
		}
		if params.Since != nil {
			query = query.Where("changed_at >= ?", *params.Since)
		}
		if params.Until != nil {
			query = query.Where("changed_at <= ?", *params.Until)
		}
		if params.Limit > 0 {
			query = query.Limit(params.Limit)
		}
	}

	err := query.Order("changed_at ASC").Find(&records).Error
	return records, err
}

func (r *priceHistoryRepository) ListSince(ctx context.Context, since time.Time, changeType *enum.PriceChangeType) ([]entity.PriceHistory, error) {
	var records []entity.PriceHistory

	query := r.db.WithContext(ctx).Model(&entity.PriceHistory{}).
		Where("changed_at >= ?", since)
	if changeType != nil {
		query = query.Where("change_type = ?", *changeType)
	}

	err := query.Order("product_id ASC, changed_at ASC").Find(&records).Error
	return records, err
}
