package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
)

// PriceHistoryRepository defines the interface for the append-only price
// change log. There are no update or delete operations.
type PriceHistoryRepository interface {
	Create(ctx context.Context, record *entity.PriceHistory) error
	// ListByProduct returns a product's price changes ordered by ChangedAt
	// ascending.
	ListByProduct(ctx context.Context, productID uuid.UUID, params *PriceHistoryFilterParams) ([]entity.PriceHistory, error)
	// ListSince returns all price changes after the cutoff across every
	// product, ordered by product then ChangedAt ascending.
	ListSince(ctx context.Context, since time.Time, changeType *enum.PriceChangeType) ([]entity.PriceHistory, error)
}

// PriceHistoryFilterParams contains filtering parameters for price history queries
type PriceHistoryFilterParams struct {
	ChangeType *enum.PriceChangeType
	Since      *time.Time
	Until      *time.Time
	Limit      int
}
