package request

import "github.com/google/uuid"

// OrderItemRequest represents one line of an order creation request.
// Prices are resolved from the catalog server-side; the client only names
// the product and quantity.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Discount  float64   `json:"discount" binding:"omitempty,min=0"`
	Modifiers []string  `json:"modifiers" binding:"omitempty,dive,max=100"`
	Note      *string   `json:"note" binding:"omitempty,max=500"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount      float64            `json:"discount" binding:"omitempty,min=0"`
	Tip           float64            `json:"tip" binding:"omitempty,min=0"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=cash card mobile other"`
	AmountPaid    float64            `json:"amount_paid" binding:"required,min=0"`
	TransactionID *string            `json:"transaction_id" binding:"omitempty,max=255"`
	CardBrand     *string            `json:"card_brand" binding:"omitempty,max=50"`
	CardLast4     *string            `json:"card_last4" binding:"omitempty,len=4"`
	CashierName   *string            `json:"cashier_name" binding:"omitempty,max=255"`
	Notes         *string            `json:"notes" binding:"omitempty,max=1000"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	StartDate  string `form:"start_date"` // YYYY-MM-DD
	EndDate    string `form:"end_date"`   // YYYY-MM-DD
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
