package pdfgen

import (
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
)

func testCanvas() *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	pdf.SetMargins(50, 50, 50)
	pdf.AddPage()
	return newCanvas(pdf, 50)
}

func TestInvoiceOverdue(t *testing.T) {
	generated := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	tmpl := &invoiceTemplate{}

	cases := []struct {
		name string
		due  time.Time
		paid bool
		want bool
	}{
		{"unpaid past due", generated.AddDate(0, 0, -1), false, true},
		{"unpaid not yet due", generated.AddDate(0, 0, 5), false, false},
		{"paid past due", generated.AddDate(0, 0, -30), true, false},
		{"due exactly at generation", generated, false, false},
	}
	for _, tc := range cases {
		data := &InvoiceData{
			BaseDocument: BaseDocument{GeneratedAt: generated},
			DueDate:      tc.due,
			Paid:         tc.paid,
		}
		if got := tmpl.isOverdue(data); got != tc.want {
			t.Errorf("%s: isOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestInvoiceFooterIncludesTaxID(t *testing.T) {
	generated := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	tmpl := &invoiceTemplate{}
	plain := &InvoiceData{BaseDocument: BaseDocument{GeneratedAt: generated}}
	taxed := &InvoiceData{BaseDocument: BaseDocument{
		GeneratedAt:  generated,
		BusinessInfo: BusinessInfo{TaxID: "US-12-3456789"},
	}}

	plainEnd := tmpl.drawFooter(testCanvas(), 100, plain)
	taxedEnd := tmpl.drawFooter(testCanvas(), 100, taxed)
	if taxedEnd <= plainEnd {
		t.Fatalf("footer with tax id ended at %v, want below %v (extra tax id line)", taxedEnd, plainEnd)
	}
}

func TestTaxLabel(t *testing.T) {
	if got := taxLabel(0); got != "Tax" {
		t.Errorf("taxLabel(0) = %q, want %q", got, "Tax")
	}
	if got := taxLabel(0.08); got != "Tax (8%)" {
		t.Errorf("taxLabel(0.08) = %q, want %q", got, "Tax (8%)")
	}
	if got := taxLabel(0.085); got != "Tax (8.5%)" {
		t.Errorf("taxLabel(0.085) = %q, want %q", got, "Tax (8.5%)")
	}
}

func TestMaskedCard(t *testing.T) {
	got := maskedCard(PaymentData{CardBrand: "VISA", CardLast4: "4242"})
	if got != "VISA ****4242" {
		t.Errorf("maskedCard = %q, want %q", got, "VISA ****4242")
	}
	if got := maskedCard(PaymentData{CardLast4: "9001"}); got != "****9001" {
		t.Errorf("maskedCard = %q, want %q", got, "****9001")
	}
}

func TestTextAdvancesCursor(t *testing.T) {
	c := testCanvas()
	st := TextStyle{Size: 10, Color: colorText}

	y := c.Top()
	next := c.Text(c.Left(), y, "hello", st)
	if next <= y {
		t.Fatalf("Text returned %v, want a cursor below %v", next, y)
	}
	if want := y + lineHeight(10); next != want {
		t.Fatalf("Text advanced to %v, want %v", next, want)
	}
}

func TestRuleAdvancesCursor(t *testing.T) {
	c := testCanvas()
	y := c.Rule(100, colorRule, 1)
	if y <= 100 {
		t.Fatalf("Rule returned %v, want a cursor below 100", y)
	}
}

func TestReceiptSectionsAreMonotonic(t *testing.T) {
	c := testCanvas()
	tmpl := &receiptTemplate{}
	data := testReceipt()

	y := c.Top()
	steps := []struct {
		name string
		fn   func(Cursor) Cursor
	}{
		{"header", func(y Cursor) Cursor { return tmpl.drawHeader(c, y, data.BusinessInfo) }},
		{"title", func(y Cursor) Cursor { return tmpl.drawTitle(c, y) }},
		{"order info", func(y Cursor) Cursor { return tmpl.drawOrderInfo(c, y, data) }},
		{"items", func(y Cursor) Cursor { return tmpl.drawItems(c, y, data) }},
		{"totals", func(y Cursor) Cursor { return tmpl.drawTotals(c, y, &data.Order, data.BusinessInfo) }},
		{"payment", func(y Cursor) Cursor { return tmpl.drawPayment(c, y, data) }},
		{"footer", func(y Cursor) Cursor { return tmpl.drawFooter(c, y, data) }},
	}
	for _, step := range steps {
		next := step.fn(y)
		if next <= y {
			t.Fatalf("%s section returned cursor %v, want below %v", step.name, next, y)
		}
		y = next
	}
	if err := c.Err(); err != nil {
		t.Fatalf("canvas error after drawing: %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[DocumentType]string{
		DocumentTypeReceipt:         "Receipt",
		DocumentTypeInvoice:         "Invoice",
		DocumentTypeDailySummary:    "Daily Summary",
		DocumentTypeInventoryReport: "Inventory Report",
		DocumentTypeSalesReport:     "Sales Report",
		DocumentType("custom_kind"): "custom_kind",
	}
	for dt, want := range cases {
		if got := dt.displayName(); got != want {
			t.Errorf("displayName(%s) = %q, want %q", dt, got, want)
		}
	}
}
