package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tillpoint/pos-api/internal/domain/enum"
)

// Order represents a point-of-sale order
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderNumber   string             `gorm:"size:100;unique;not null" json:"order_number"`
	Status        enum.OrderStatus   `gorm:"default:0" json:"status"`
	Subtotal      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount      int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxRate       float64            `gorm:"default:0" json:"tax_rate"`
	TaxAmount     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tip           int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total         int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	AmountPaid    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ChangeDue     int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TransactionID *string            `gorm:"size:100" json:"transaction_id,omitempty"`
	CardBrand     *string            `gorm:"size:50" json:"card_brand,omitempty"`
	CardLast4     *string            `gorm:"size:4" json:"card_last4,omitempty"`
	CashierName   *string            `gorm:"size:255" json:"cashier_name,omitempty"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal   float64 `json:"subtotal"`
		Discount   float64 `json:"discount"`
		TaxAmount  float64 `json:"tax_amount"`
		Tip        float64 `json:"tip"`
		Total      float64 `json:"total"`
		AmountPaid float64 `json:"amount_paid"`
		ChangeDue  float64 `json:"change_due"`
	}{
		Alias:      Alias(o),
		Subtotal:   float64(o.Subtotal) / 100,
		Discount:   float64(o.Discount) / 100,
		TaxAmount:  float64(o.TaxAmount) / 100,
		Tip:        float64(o.Tip) / 100,
		Total:      float64(o.Total) / 100,
		AmountPaid: float64(o.AmountPaid) / 100,
		ChangeDue:  float64(o.ChangeDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// GetSubtotalDecimal returns the subtotal as a decimal
func (o *Order) GetSubtotalDecimal() float64 {
	return float64(o.Subtotal) / 100
}

// OrderItem represents a line item in an order. Name, SKU and prices are
// snapshots taken at sale time; later product edits do not rewrite history.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	SKU       string         `gorm:"size:100" json:"sku"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	Discount  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	Modifiers []string       `gorm:"serializer:json" json:"modifiers,omitempty"`
	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Discount:  float64(oi.Discount) / 100,
		Total:     float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
