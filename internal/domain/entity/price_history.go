package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tillpoint/pos-api/internal/domain/enum"
)

// PriceHistory is one immutable record of a product price change. Rows are
// append-only: nothing in the system updates or deletes them.
type PriceHistory struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ProductID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	ChangeType enum.PriceChangeType `gorm:"not null" json:"change_type"`
	OldPrice   int64                `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	NewPrice   int64                `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	// ChangePercent is relative to the old price; zero when the old price
	// was zero.
	ChangePercent float64 `gorm:"default:0" json:"change_percent"`
	// Margin snapshots are nil when the selling price at the time was zero.
	OldMargin   *float64  `json:"old_margin,omitempty"`
	NewMargin   *float64  `json:"new_margin,omitempty"`
	MarginDelta *float64  `json:"margin_delta,omitempty"`
	Reason      *string   `gorm:"type:text" json:"reason,omitempty"`
	ChangedAt   time.Time `gorm:"not null;index" json:"changed_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (ph PriceHistory) MarshalJSON() ([]byte, error) {
	type Alias PriceHistory
	return json.Marshal(&struct {
		Alias
		OldPrice     float64 `json:"old_price"`
		NewPrice     float64 `json:"new_price"`
		ChangeAmount float64 `json:"change_amount"`
	}{
		Alias:        Alias(ph),
		OldPrice:     float64(ph.OldPrice) / 100,
		NewPrice:     float64(ph.NewPrice) / 100,
		ChangeAmount: float64(ph.NewPrice-ph.OldPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new price history row
func (ph *PriceHistory) BeforeCreate(tx *gorm.DB) error {
	if ph.ID == uuid.Nil {
		ph.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PriceHistory model
func (PriceHistory) TableName() string {
	return "price_history"
}
