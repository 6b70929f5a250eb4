package request

// UpdateSettingsRequest represents a store settings update request
type UpdateSettingsRequest struct {
	BusinessName    *string  `json:"business_name" binding:"omitempty,min=1,max=255"`
	BusinessAddress *string  `json:"business_address" binding:"omitempty,max=1000"`
	BusinessPhone   *string  `json:"business_phone" binding:"omitempty,max=50"`
	BusinessEmail   *string  `json:"business_email" binding:"omitempty,email"`
	BusinessWebsite *string  `json:"business_website" binding:"omitempty,max=255"`
	TaxID           *string  `json:"tax_id" binding:"omitempty,max=50"`
	Currency        *string  `json:"currency" binding:"omitempty,len=3"`
	CurrencySymbol  *string  `json:"currency_symbol" binding:"omitempty,max=10"`
	Locale          *string  `json:"locale" binding:"omitempty,max=20"`
	Timezone        *string  `json:"timezone" binding:"omitempty,max=50"`
	TaxRate         *float64 `json:"tax_rate" binding:"omitempty,min=0,max=1"`
	ReceiptFooter   *string  `json:"receipt_footer" binding:"omitempty,max=1000"`
	InvoiceTerms    *string  `json:"invoice_terms" binding:"omitempty,max=1000"`
	LowStockAlert   *bool    `json:"low_stock_alert"`
}
