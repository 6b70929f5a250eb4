// Package pdfgen renders POS documents (receipts, invoices, reports) to PDF.
//
// Callers build one of the typed document shapes, hand it to a Service, and
// receive the finished PDF as a byte slice or streamed to a writer. Document
// data is transient: the service never retains it beyond a single call.
package pdfgen

import "time"

// DocumentType discriminates the document variants the engine can render.
type DocumentType string

const (
	DocumentTypeReceipt         DocumentType = "receipt"
	DocumentTypeInvoice         DocumentType = "invoice"
	DocumentTypeDailySummary    DocumentType = "daily_summary"
	DocumentTypeInventoryReport DocumentType = "inventory_report"
	DocumentTypeSalesReport     DocumentType = "sales_report"
)

// displayName returns the human title used in document metadata.
func (d DocumentType) displayName() string {
	switch d {
	case DocumentTypeReceipt:
		return "Receipt"
	case DocumentTypeInvoice:
		return "Invoice"
	case DocumentTypeDailySummary:
		return "Daily Summary"
	case DocumentTypeInventoryReport:
		return "Inventory Report"
	case DocumentTypeSalesReport:
		return "Sales Report"
	default:
		return string(d)
	}
}

// BusinessInfo is the immutable business snapshot stamped on every document.
type BusinessInfo struct {
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	Website        string `json:"website,omitempty"`
	TaxID          string `json:"tax_id,omitempty"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`
	Locale         string `json:"locale"`
}

// OrderItemData is one rendered line item. Total is a trusted precomputed
// input; the renderer never recomputes unitPrice*quantity-discount.
type OrderItemData struct {
	Name      string   `json:"name"`
	SKU       string   `json:"sku,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Total     float64  `json:"total"`
	Modifiers []string `json:"modifiers,omitempty"`
	Note      string   `json:"note,omitempty"`
	Discount  float64  `json:"discount,omitempty"`
}

// OrderData carries the order block shared by receipts and invoices.
// Total is expected to equal subtotal - discount + tax + tip by construction
// upstream; it is rendered as supplied.
type OrderData struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	Items       []OrderItemData `json:"items"`
	Subtotal    float64         `json:"subtotal"`
	TaxAmount   float64         `json:"tax_amount"`
	TaxRate     float64         `json:"tax_rate"` // fractional, e.g. 0.08
	Discount    float64         `json:"discount"`
	Tip         float64         `json:"tip,omitempty"`
	Total       float64         `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	Notes       string          `json:"notes,omitempty"`
}

// PaymentData describes how a receipt's order was paid.
type PaymentData struct {
	Method        string  `json:"method"`
	MethodLabel   string  `json:"method_label"`
	AmountPaid    float64 `json:"amount_paid"`
	ChangeDue     float64 `json:"change_due"`
	TransactionID string  `json:"transaction_id,omitempty"`
	CardBrand     string  `json:"card_brand,omitempty"`
	CardLast4     string  `json:"card_last4,omitempty"`
}

// CustomerInfo is the bill-to block.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// StaffInfo attributes a document to the staff member who produced it.
type StaffInfo struct {
	Name string `json:"name"`
}

// Document is the tagged-union interface every concrete shape satisfies via
// an embedded BaseDocument. The type tag selects the template.
type Document interface {
	Type() DocumentType
	Business() BusinessInfo
	GeneratedTime() time.Time
}

// BaseDocument is embedded by every concrete document shape.
type BaseDocument struct {
	DocumentType DocumentType `json:"document_type"`
	GeneratedAt  time.Time    `json:"generated_at"`
	BusinessInfo BusinessInfo `json:"business_info"`
}

func (b BaseDocument) Type() DocumentType       { return b.DocumentType }
func (b BaseDocument) Business() BusinessInfo   { return b.BusinessInfo }
func (b BaseDocument) GeneratedTime() time.Time { return b.GeneratedAt }

// ReceiptData is the document shape for point-of-sale receipts.
type ReceiptData struct {
	BaseDocument
	Order         OrderData     `json:"order"`
	Payment       PaymentData   `json:"payment"`
	Customer      *CustomerInfo `json:"customer,omitempty"`
	Cashier       *StaffInfo    `json:"cashier,omitempty"`
	FooterMessage string        `json:"footer_message,omitempty"`
	TrackingURL   string        `json:"tracking_url,omitempty"`
}

// InvoiceData is the document shape for invoices.
type InvoiceData struct {
	BaseDocument
	Order         OrderData     `json:"order"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   time.Time     `json:"invoice_date"`
	DueDate       time.Time     `json:"due_date"`
	Paid          bool          `json:"paid"`
	BillTo        *CustomerInfo `json:"bill_to,omitempty"`
	Terms         string        `json:"terms,omitempty"`
	Notes         string        `json:"notes,omitempty"`
}

// PaymentBreakdown is one payment-method row on a daily summary.
type PaymentBreakdown struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// ReportLine is a generic name/quantity/amount row.
type ReportLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// DailySummaryData is the document shape for end-of-day summaries.
type DailySummaryData struct {
	BaseDocument
	Date       time.Time          `json:"date"`
	OrderCount int                `json:"order_count"`
	GrossSales float64            `json:"gross_sales"`
	Discounts  float64            `json:"discounts"`
	Tax        float64            `json:"tax"`
	Tips       float64            `json:"tips"`
	NetSales   float64            `json:"net_sales"`
	Payments   []PaymentBreakdown `json:"payments,omitempty"`
	TopItems   []ReportLine       `json:"top_items,omitempty"`
}

// InventoryRow is one product line on an inventory report.
type InventoryRow struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Quantity int     `json:"quantity"`
	UnitCost float64 `json:"unit_cost"`
	Value    float64 `json:"value"`
	LowStock bool    `json:"low_stock"`
}

// InventoryReportData is the document shape for stock valuation reports.
type InventoryReportData struct {
	BaseDocument
	Rows       []InventoryRow `json:"rows"`
	TotalItems int            `json:"total_items"`
	TotalValue float64        `json:"total_value"`
}

// SalesRow is one day's figures on a sales report.
type SalesRow struct {
	Date    time.Time `json:"date"`
	Orders  int       `json:"orders"`
	Revenue float64   `json:"revenue"`
}

// SalesReportData is the document shape for period sales reports.
type SalesReportData struct {
	BaseDocument
	From         time.Time  `json:"from"`
	To           time.Time  `json:"to"`
	Rows         []SalesRow `json:"rows"`
	TotalOrders  int        `json:"total_orders"`
	TotalRevenue float64    `json:"total_revenue"`
	AverageOrder float64    `json:"average_order"`
}
