package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
	"github.com/tillpoint/pos-api/pkg/pdfgen"
	"github.com/tillpoint/pos-api/pkg/utils"
)

var documentsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "documents",
	Name:      "generated_total",
	Help:      "Number of PDF documents generated, by document type.",
}, []string{"type"})

// invoiceDueDays is the payment window stamped on invoices.
const invoiceDueDays = 30

// DocumentService assembles document data from store records and drives
// the PDF engine.
type DocumentService struct {
	pdf           *pdfgen.Service
	orderRepo     repository.OrderRepository
	settingsRepo  repository.SettingsRepository
	productRepo   repository.ProductRepository
	analyticsRepo repository.AnalyticsRepository
	trackingBase  string
	now           func() time.Time
}

// NewDocumentService creates a new document service. trackingBase, when
// non-empty, is the public URL prefix embedded in receipt QR codes.
func NewDocumentService(
	pdf *pdfgen.Service,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	productRepo repository.ProductRepository,
	analyticsRepo repository.AnalyticsRepository,
	trackingBase string,
) *DocumentService {
	return &DocumentService{
		pdf:           pdf,
		orderRepo:     orderRepo,
		settingsRepo:  settingsRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
		trackingBase:  trackingBase,
		now:           time.Now,
	}
}

func (s *DocumentService) storeSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Store settings")
	}
	return settings, nil
}

func businessInfo(settings *entity.StoreSettings) pdfgen.BusinessInfo {
	return pdfgen.BusinessInfo{
		Name:           settings.BusinessName,
		Address:        settings.BusinessAddress,
		Phone:          settings.BusinessPhone,
		Email:          settings.BusinessEmail,
		Website:        settings.BusinessWebsite,
		TaxID:          settings.TaxID,
		Currency:       settings.Currency,
		CurrencySymbol: settings.CurrencySymbol,
		Locale:         settings.Locale,
	}
}

func orderData(order *entity.Order) pdfgen.OrderData {
	items := make([]pdfgen.OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		note := ""
		if item.Note != nil {
			note = *item.Note
		}
		items = append(items, pdfgen.OrderItemData{
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Total) / 100,
			Modifiers: item.Modifiers,
			Note:      note,
			Discount:  float64(item.Discount) / 100,
		})
	}
	notes := ""
	if order.Notes != nil {
		notes = *order.Notes
	}
	return pdfgen.OrderData{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		Items:       items,
		Subtotal:    float64(order.Subtotal) / 100,
		TaxAmount:   float64(order.TaxAmount) / 100,
		TaxRate:     order.TaxRate,
		Discount:    float64(order.Discount) / 100,
		Tip:         float64(order.Tip) / 100,
		Total:       float64(order.Total) / 100,
		CreatedAt:   order.CreatedAt,
		Notes:       notes,
	}
}

func paymentData(order *entity.Order) pdfgen.PaymentData {
	p := pdfgen.PaymentData{
		Method:      order.PaymentMethod.String(),
		MethodLabel: order.PaymentMethod.Label(),
		AmountPaid:  float64(order.AmountPaid) / 100,
		ChangeDue:   float64(order.ChangeDue) / 100,
	}
	if order.TransactionID != nil {
		p.TransactionID = *order.TransactionID
	}
	if order.CardBrand != nil {
		p.CardBrand = *order.CardBrand
	}
	if order.CardLast4 != nil {
		p.CardLast4 = *order.CardLast4
	}
	return p
}

func customerInfo(c *entity.Customer) *pdfgen.CustomerInfo {
	if c == nil {
		return nil
	}
	info := &pdfgen.CustomerInfo{Name: c.Name}
	if c.Email != nil {
		info.Email = *c.Email
	}
	if c.Phone != nil {
		info.Phone = *c.Phone
	}
	if c.Address != nil {
		info.Address = *c.Address
	}
	return info
}

func (s *DocumentService) getOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// BuildReceipt assembles the receipt document for an order.
func (s *DocumentService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*pdfgen.ReceiptData, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	settings, err := s.storeSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &pdfgen.ReceiptData{
		BaseDocument: pdfgen.BaseDocument{
			DocumentType: pdfgen.DocumentTypeReceipt,
			GeneratedAt:  s.now(),
			BusinessInfo: businessInfo(settings),
		},
		Order:    orderData(order),
		Payment:  paymentData(order),
		Customer: customerInfo(order.Customer),
	}
	if order.CashierName != nil {
		receipt.Cashier = &pdfgen.StaffInfo{Name: *order.CashierName}
	}
	receipt.FooterMessage = settings.ReceiptFooter
	if s.trackingBase != "" {
		receipt.TrackingURL = s.trackingBase + "/orders/" + order.ID.String()
	}
	return receipt, nil
}

// BuildInvoice assembles the invoice document for an order.
func (s *DocumentService) BuildInvoice(ctx context.Context, orderID uuid.UUID) (*pdfgen.InvoiceData, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	settings, err := s.storeSettings(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &pdfgen.InvoiceData{
		BaseDocument: pdfgen.BaseDocument{
			DocumentType: pdfgen.DocumentTypeInvoice,
			GeneratedAt:  s.now(),
			BusinessInfo: businessInfo(settings),
		},
		Order:         orderData(order),
		InvoiceNumber: utils.GenerateInvoiceNumber(order.OrderNumber),
		InvoiceDate:   order.CreatedAt,
		DueDate:       order.CreatedAt.AddDate(0, 0, invoiceDueDays),
		Paid:          order.Status == enum.OrderStatusCompleted && order.AmountPaid >= order.Total,
		BillTo:        customerInfo(order.Customer),
	}
	invoice.Terms = settings.InvoiceTerms
	return invoice, nil
}

// BuildDailySummary assembles the end-of-day summary document.
func (s *DocumentService) BuildDailySummary(ctx context.Context, day time.Time) (*pdfgen.DailySummaryData, error) {
	settings, err := s.storeSettings(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.analyticsRepo.GetDailySummary(ctx, day)
	if err != nil {
		return nil, err
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	payments, err := s.analyticsRepo.GetPaymentTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topItems, err := s.analyticsRepo.GetTopItems(ctx, start, end, 10)
	if err != nil {
		return nil, err
	}

	doc := &pdfgen.DailySummaryData{
		BaseDocument: pdfgen.BaseDocument{
			DocumentType: pdfgen.DocumentTypeDailySummary,
			GeneratedAt:  s.now(),
			BusinessInfo: businessInfo(settings),
		},
		Date:       start,
		OrderCount: summary.OrderCount,
		GrossSales: summary.GrossSales,
		Discounts:  summary.Discounts,
		Tax:        summary.Tax,
		Tips:       summary.Tips,
		NetSales:   summary.NetSales,
	}
	for _, p := range payments {
		doc.Payments = append(doc.Payments, pdfgen.PaymentBreakdown{
			Label:  p.Method,
			Count:  p.Count,
			Amount: p.Amount,
		})
	}
	for _, item := range topItems {
		doc.TopItems = append(doc.TopItems, pdfgen.ReportLine{
			Name:     item.Name,
			Quantity: item.QuantitySold,
			Amount:   item.Revenue,
		})
	}
	return doc, nil
}

// BuildInventoryReport assembles the stock valuation document.
func (s *DocumentService) BuildInventoryReport(ctx context.Context) (*pdfgen.InventoryReportData, error) {
	settings, err := s.storeSettings(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	doc := &pdfgen.InventoryReportData{
		BaseDocument: pdfgen.BaseDocument{
			DocumentType: pdfgen.DocumentTypeInventoryReport,
			GeneratedAt:  s.now(),
			BusinessInfo: businessInfo(settings),
		},
	}
	var totalValue int64
	for _, p := range products {
		value := p.CostPrice * int64(p.Quantity)
		totalValue += value
		doc.TotalItems += p.Quantity
		doc.Rows = append(doc.Rows, pdfgen.InventoryRow{
			Name:     p.Name,
			SKU:      p.SKU,
			Quantity: p.Quantity,
			UnitCost: p.GetCostPriceDecimal(),
			Value:    float64(value) / 100,
			LowStock: p.IsLowStock(),
		})
	}
	doc.TotalValue = float64(totalValue) / 100
	return doc, nil
}

// BuildSalesReport assembles the period sales document. Both dates are
// inclusive.
func (s *DocumentService) BuildSalesReport(ctx context.Context, from, to time.Time) (*pdfgen.SalesReportData, error) {
	settings, err := s.storeSettings(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.analyticsRepo.GetSalesByDay(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	doc := &pdfgen.SalesReportData{
		BaseDocument: pdfgen.BaseDocument{
			DocumentType: pdfgen.DocumentTypeSalesReport,
			GeneratedAt:  s.now(),
			BusinessInfo: businessInfo(settings),
		},
		From: from,
		To:   to,
	}
	for _, d := range days {
		doc.Rows = append(doc.Rows, pdfgen.SalesRow{
			Date:    d.Date,
			Orders:  d.Orders,
			Revenue: d.Revenue,
		})
		doc.TotalOrders += d.Orders
		doc.TotalRevenue += d.Revenue
	}
	if doc.TotalOrders > 0 {
		doc.AverageOrder = doc.TotalRevenue / float64(doc.TotalOrders)
	}
	return doc, nil
}

// Stream renders a prepared document to the destination writer.
func (s *DocumentService) Stream(doc pdfgen.Document, w io.Writer, opts pdfgen.Options) error {
	if err := s.pdf.Stream(doc, w, opts); err != nil {
		return err
	}
	documentsGenerated.WithLabelValues(string(doc.Type())).Inc()
	return nil
}

// Generate renders a prepared document and returns the PDF bytes.
func (s *DocumentService) Generate(doc pdfgen.Document, opts pdfgen.Options) ([]byte, error) {
	data, err := s.pdf.Generate(doc, opts)
	if err != nil {
		return nil, err
	}
	documentsGenerated.WithLabelValues(string(doc.Type())).Inc()
	return data, nil
}
