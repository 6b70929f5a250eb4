package repository

import (
	"context"

	"github.com/tillpoint/pos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access.
// The store holds exactly one settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Create(ctx context.Context, settings *entity.StoreSettings) error
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
