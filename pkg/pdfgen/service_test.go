package pdfgen

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func testBusiness() BusinessInfo {
	return BusinessInfo{
		Name:           "Corner Deli",
		Address:        "12 Market St, Springfield",
		Phone:          "+1 555 0100",
		Email:          "hello@cornerdeli.example",
		TaxID:          "US-123456",
		Currency:       "USD",
		CurrencySymbol: "$",
		Locale:         "en-US",
	}
}

func testOrder() OrderData {
	created := time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	return OrderData{
		ID:          "8a1f2c3d",
		OrderNumber: "1042",
		Items: []OrderItemData{
			{
				Name:      "Pastrami Sandwich",
				SKU:       "SND-001",
				Quantity:  2,
				UnitPrice: 12.50,
				Total:     25.00,
				Modifiers: []string{"extra pickles", "rye bread"},
			},
			{
				Name:      "Iced Tea",
				Quantity:  1,
				UnitPrice: 3.00,
				Total:     2.50,
				Discount:  0.50,
				Note:      "no sugar",
			},
		},
		Subtotal:  27.50,
		TaxRate:   0.08,
		TaxAmount: 2.20,
		Discount:  0.50,
		Tip:       4.00,
		Total:     33.20,
		CreatedAt: created,
	}
}

func testReceipt() *ReceiptData {
	return &ReceiptData{
		BaseDocument: BaseDocument{
			DocumentType: DocumentTypeReceipt,
			GeneratedAt:  time.Date(2026, 3, 14, 12, 31, 0, 0, time.UTC),
			BusinessInfo: testBusiness(),
		},
		Order: testOrder(),
		Payment: PaymentData{
			Method:     "card",
			AmountPaid: 33.20,
			CardBrand:  "VISA",
			CardLast4:  "4242",
		},
		Cashier:       &StaffInfo{Name: "Ana"},
		FooterMessage: "See you soon!",
	}
}

func testInvoice(paid bool) *InvoiceData {
	return &InvoiceData{
		BaseDocument: BaseDocument{
			DocumentType: DocumentTypeInvoice,
			GeneratedAt:  time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			BusinessInfo: testBusiness(),
		},
		Order:         testOrder(),
		InvoiceNumber: "INV-2026-0007",
		InvoiceDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		Paid:          paid,
		BillTo: &CustomerInfo{
			Name:    "Maple & Co",
			Address: "44 Birch Ave",
			Email:   "ap@maple.example",
		},
		Terms: "Net 30",
	}
}

func assertPDF(t *testing.T, data []byte) {
	t.Helper()
	if len(data) == 0 {
		t.Fatal("expected PDF bytes, got none")
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestGenerateReceipt(t *testing.T) {
	data, err := Default().Generate(testReceipt(), Options{Size: PageSizeReceipt})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	assertPDF(t, data)
}

func TestGenerateInvoice(t *testing.T) {
	for _, paid := range []bool{true, false} {
		data, err := Default().Generate(testInvoice(paid), Options{})
		if err != nil {
			t.Fatalf("Generate(paid=%v): %v", paid, err)
		}
		assertPDF(t, data)
	}
}

func TestGenerateReports(t *testing.T) {
	base := BaseDocument{
		GeneratedAt:  time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC),
		BusinessInfo: testBusiness(),
	}
	docs := []Document{
		&DailySummaryData{
			BaseDocument: withType(base, DocumentTypeDailySummary),
			Date:         time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
			OrderCount:   18,
			GrossSales:   612.40,
			Discounts:    12.00,
			Tax:          44.80,
			Tips:         31.50,
			NetSales:     600.40,
			Payments: []PaymentBreakdown{
				{Label: "Card", Count: 12, Amount: 420.15},
				{Label: "Cash", Count: 6, Amount: 192.25},
			},
			TopItems: []ReportLine{{Name: "Pastrami Sandwich", Quantity: 9, Amount: 112.50}},
		},
		&InventoryReportData{
			BaseDocument: withType(base, DocumentTypeInventoryReport),
			Rows: []InventoryRow{
				{Name: "Rye Bread", SKU: "BRD-01", Quantity: 3, UnitCost: 1.80, Value: 5.40, LowStock: true},
				{Name: "Iced Tea", SKU: "DRK-03", Quantity: 48, UnitCost: 0.70, Value: 33.60},
			},
			TotalItems: 51,
			TotalValue: 39.00,
		},
		&SalesReportData{
			BaseDocument: withType(base, DocumentTypeSalesReport),
			From:         time.Date(2026, 4, 27, 0, 0, 0, 0, time.UTC),
			To:           time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
			Rows: []SalesRow{
				{Date: time.Date(2026, 4, 27, 0, 0, 0, 0, time.UTC), Orders: 14, Revenue: 402.10},
				{Date: time.Date(2026, 4, 28, 0, 0, 0, 0, time.UTC), Orders: 11, Revenue: 318.55},
			},
			TotalOrders:  25,
			TotalRevenue: 720.65,
			AverageOrder: 28.83,
		},
	}

	svc := Default()
	for _, doc := range docs {
		data, err := svc.Generate(doc, Options{Size: PageSizeLetter})
		if err != nil {
			t.Fatalf("Generate(%s): %v", doc.Type(), err)
		}
		assertPDF(t, data)
	}
}

func withType(base BaseDocument, dt DocumentType) BaseDocument {
	base.DocumentType = dt
	return base
}

func TestGenerateUnregisteredType(t *testing.T) {
	svc := NewService()
	svc.RegisterTemplate(NewReceiptTemplate())

	doc := testInvoice(false)
	_, err := svc.Generate(doc, Options{})
	if err == nil {
		t.Fatal("expected an error for an unregistered document type")
	}
	if !strings.Contains(err.Error(), `No template registered for document type "invoice"`) {
		t.Fatalf("unexpected error message: %v", err)
	}
	if !strings.Contains(err.Error(), "receipt") {
		t.Fatalf("error should list registered types: %v", err)
	}
}

type stubTemplate struct {
	dt DocumentType
}

func (s *stubTemplate) DocumentType() DocumentType { return s.dt }
func (s *stubTemplate) Generate(c *Canvas, doc Document) error {
	c.CenteredText(c.Top(), "stub", TextStyle{Size: 10, Color: colorText})
	return nil
}

func TestRegisterTemplateOverwrites(t *testing.T) {
	svc := Default()
	svc.RegisterTemplate(&stubTemplate{dt: DocumentTypeReceipt})

	count := 0
	for _, dt := range svc.RegisteredTypes() {
		if dt == DocumentTypeReceipt {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("receipt registered %d times after overwrite, want 1", count)
	}

	data, err := svc.Generate(testReceipt(), Options{})
	if err != nil {
		t.Fatalf("Generate with replacement template: %v", err)
	}
	assertPDF(t, data)
}

func TestRegisteredTypesSorted(t *testing.T) {
	types := Default().RegisteredTypes()
	if len(types) != 5 {
		t.Fatalf("got %d registered types, want 5", len(types))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}

func TestHasTemplate(t *testing.T) {
	svc := NewService()
	if svc.HasTemplate(DocumentTypeReceipt) {
		t.Fatal("empty service should have no templates")
	}
	svc.RegisterTemplate(NewReceiptTemplate())
	if !svc.HasTemplate(DocumentTypeReceipt) {
		t.Fatal("receipt template should be registered")
	}
}

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, errors.New("sink closed") }

func TestStreamWriterError(t *testing.T) {
	err := Default().Stream(testReceipt(), errWriter{}, Options{})
	if err == nil {
		t.Fatal("expected an error when the destination rejects writes")
	}
	if !strings.Contains(err.Error(), "PDF generation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStreamMatchesGenerate(t *testing.T) {
	doc := testReceipt()
	svc := Default()

	direct, err := svc.Generate(doc, Options{Size: PageSizeReceipt})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var streamed bytes.Buffer
	if err := svc.Stream(doc, &streamed, Options{Size: PageSizeReceipt}); err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if !bytes.Equal(direct, streamed.Bytes()) {
		t.Fatal("Stream output differs from Generate output for the same document")
	}
}

func TestGenerateUnknownPageSizeFallsBackToA4(t *testing.T) {
	data, err := Default().Generate(testReceipt(), Options{Size: PageSize("TABLOID")})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	assertPDF(t, data)
}
