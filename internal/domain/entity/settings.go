package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings holds the single row of store-wide configuration. The
// business identity fields are stamped on every generated document.
type StoreSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Business identity
	BusinessName    string `gorm:"size:255;not null" json:"business_name"`
	BusinessAddress string `gorm:"type:text" json:"business_address"`
	BusinessPhone   string `gorm:"size:50" json:"business_phone"`
	BusinessEmail   string `gorm:"size:255" json:"business_email"`
	BusinessWebsite string `gorm:"size:255" json:"business_website"`
	TaxID           string `gorm:"size:50;column:tax_id" json:"tax_id"`

	// Formatting
	Currency       string `gorm:"size:10;default:'USD'" json:"currency"`
	CurrencySymbol string `gorm:"size:10;default:'$'" json:"currency_symbol"`
	Locale         string `gorm:"size:20;default:'en-US'" json:"locale"`
	Timezone       string `gorm:"size:50;default:'UTC'" json:"timezone"`

	// Sales
	TaxRate       float64 `gorm:"default:0" json:"tax_rate"` // fractional, e.g. 0.08
	ReceiptFooter string  `gorm:"type:text" json:"receipt_footer"`
	InvoiceTerms  string  `gorm:"type:text;default:'Net 30'" json:"invoice_terms"`
	LowStockAlert bool    `gorm:"default:true" json:"low_stock_alert"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
