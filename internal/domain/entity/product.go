package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	SKU           string         `gorm:"size:100;unique;not null" json:"sku"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	CostPrice     int64          `gorm:"default:0" json:"cost_price"`    // Stored in cents
	SellingPrice  int64          `gorm:"default:0" json:"selling_price"` // Stored in cents
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category     *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PriceHistory []PriceHistory `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetCostPriceDecimal returns the cost price as a decimal (for display)
func (p *Product) GetCostPriceDecimal() float64 {
	return float64(p.CostPrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// SetCostPriceFromDecimal sets the cost price from a decimal value
func (p *Product) SetCostPriceFromDecimal(price float64) {
	p.CostPrice = int64(price*100 + 0.5)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price*100 + 0.5)
}

// Margin returns the gross margin percentage. The second return is false
// when the selling price is zero and no margin is defined.
func (p *Product) Margin() (float64, bool) {
	if p.SellingPrice == 0 {
		return 0, false
	}
	return float64(p.SellingPrice-p.CostPrice) / float64(p.SellingPrice) * 100, true
}

// IsLowStock reports whether the on-hand quantity is at or below the alert
// threshold.
func (p *Product) IsLowStock() bool {
	return p.QuantityAlert > 0 && p.Quantity <= p.QuantityAlert
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID            uuid.UUID  `json:"id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Description   *string    `json:"description,omitempty"`
	Quantity      int        `json:"quantity"`
	QuantityAlert int        `json:"quantity_alert"`
	CostPrice     float64    `json:"cost_price"`    // Decimal value for JSON
	SellingPrice  float64    `json:"selling_price"` // Decimal value for JSON
	MarginPercent *float64   `json:"margin_percent,omitempty"`
	IsActive      bool       `json:"is_active"`
	LowStock      bool       `json:"low_stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Category      *Category  `json:"category,omitempty"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	var margin *float64
	if m, ok := p.Margin(); ok {
		margin = &m
	}
	return json.Marshal(ProductJSON{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Quantity:      p.Quantity,
		QuantityAlert: p.QuantityAlert,
		CostPrice:     p.GetCostPriceDecimal(),
		SellingPrice:  p.GetSellingPriceDecimal(),
		MarginPercent: margin,
		IsActive:      p.IsActive,
		LowStock:      p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Category:      p.Category,
	})
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
