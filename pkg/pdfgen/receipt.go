package pdfgen

import (
	"bytes"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/tillpoint/pos-api/pkg/format"
)

// receiptTemplate lays out point-of-sale receipts. It is sized to read well
// on the narrow thermal page but works on any geometry.
type receiptTemplate struct{}

// NewReceiptTemplate creates the built-in receipt template.
func NewReceiptTemplate() Template {
	return &receiptTemplate{}
}

func (t *receiptTemplate) DocumentType() DocumentType {
	return DocumentTypeReceipt
}

func (t *receiptTemplate) Generate(c *Canvas, doc Document) error {
	data, ok := doc.(*ReceiptData)
	if !ok {
		return fmt.Errorf("receipt template: unexpected document data %T", doc)
	}

	y := c.Top()
	y = t.drawHeader(c, y, data.BusinessInfo)
	y = t.drawTitle(c, y)
	y = t.drawOrderInfo(c, y, data)
	y = t.drawItems(c, y, data)
	y = t.drawTotals(c, y, &data.Order, data.BusinessInfo)
	y = t.drawPayment(c, y, data)
	t.drawFooter(c, y, data)

	return c.Err()
}

func (t *receiptTemplate) drawHeader(c *Canvas, y Cursor, b BusinessInfo) Cursor {
	y = c.CenteredText(y, b.Name, TextStyle{Style: "B", Size: 12, Color: colorText})
	if b.Address != "" {
		y = c.CenteredText(y, b.Address, TextStyle{Size: 8, Color: colorText})
	}
	if contact := contactLine(b); contact != "" {
		y = c.CenteredText(y, contact, TextStyle{Size: 8, Color: colorMuted})
	}
	return y + 4
}

func (t *receiptTemplate) drawTitle(c *Canvas, y Cursor) Cursor {
	return c.CenteredText(y, "RECEIPT", TextStyle{Style: "B", Size: 11, Color: colorText}) + 3
}

func (t *receiptTemplate) drawOrderInfo(c *Canvas, y Cursor, data *ReceiptData) Cursor {
	b := data.BusinessInfo
	body := TextStyle{Size: 8, Color: colorText}

	// Left column: order number and cashier. Right column: date.
	left := y
	left = c.Text(c.Left(), left, "Order #"+data.Order.OrderNumber, body)
	if data.Cashier != nil && data.Cashier.Name != "" {
		left = c.Text(c.Left(), left, "Cashier: "+data.Cashier.Name, body)
	}
	c.TextIn(c.Left(), c.ContentWidth(), y, format.FormatDateTime(data.Order.CreatedAt, b.Locale), body, AlignRight)

	y = left
	if data.Customer != nil && data.Customer.Name != "" {
		y = c.Text(c.Left(), y, "Customer: "+data.Customer.Name, body)
	}
	return y + 3
}

// receipt item table column fractions of the content width
const (
	receiptQtyFrac  = 0.12
	receiptNameFrac = 0.46
	receiptUnitFrac = 0.20
)

func (t *receiptTemplate) drawItems(c *Canvas, y Cursor, data *ReceiptData) Cursor {
	b := data.BusinessInfo
	w := c.ContentWidth()
	qtyW := w * receiptQtyFrac
	nameW := w * receiptNameFrac
	unitW := w * receiptUnitFrac
	totalW := w - qtyW - nameW - unitW

	qtyX := c.Left()
	nameX := qtyX + qtyW
	unitX := nameX + nameW
	totalX := unitX + unitW

	body := TextStyle{Size: 8, Color: colorText}
	sub := TextStyle{Size: 7, Color: colorMuted}

	y = c.Rule(y+2, colorRule, 0.6)
	for _, item := range data.Order.Items {
		c.TextIn(qtyX, qtyW, y, fmt.Sprintf("%d", item.Quantity), body, AlignLeft)
		c.TextIn(nameX, nameW, y, item.Name, body, AlignLeft)
		c.TextIn(unitX, unitW, y, money(item.UnitPrice, b), body, AlignRight)
		y = c.TextIn(totalX, totalW, y, money(item.Total, b), body, AlignRight)

		for _, mod := range item.Modifiers {
			y = c.Text(nameX+6, y, "+ "+mod, sub)
		}
		if item.Note != "" {
			y = c.Text(nameX+6, y, "Note: "+item.Note, sub)
		}
		if item.Discount > 0 {
			y = c.Text(nameX+6, y, "Discount -"+money(item.Discount, b),
				TextStyle{Size: 7, Color: colorAccent})
		}
	}
	return c.Rule(y+2, colorRule, 0.6)
}

func (t *receiptTemplate) drawTotals(c *Canvas, y Cursor, order *OrderData, b BusinessInfo) Cursor {
	blockW := c.ContentWidth() * 0.62
	blockX := c.Right() - blockW
	body := TextStyle{Size: 8, Color: colorText}

	y = amountRow(c, y, blockX, blockW, "Subtotal", money(order.Subtotal, b), body, body)
	if order.Discount > 0 {
		tinted := TextStyle{Size: 8, Color: colorAccent}
		y = amountRow(c, y, blockX, blockW, "Discount", "-"+money(order.Discount, b), tinted, tinted)
	}
	y = amountRow(c, y, blockX, blockW, taxLabel(order.TaxRate), money(order.TaxAmount, b), body, body)
	if order.Tip > 0 {
		y = amountRow(c, y, blockX, blockW, "Tip", money(order.Tip, b), body, body)
	}

	emphasis := TextStyle{Style: "B", Size: 10, Color: colorText}
	y = amountRow(c, y+2, blockX, blockW, "TOTAL", money(order.Total, b), emphasis, emphasis)
	return y + 4
}

func (t *receiptTemplate) drawPayment(c *Canvas, y Cursor, data *ReceiptData) Cursor {
	b := data.BusinessInfo
	p := data.Payment
	body := TextStyle{Size: 8, Color: colorText}
	blockW := c.ContentWidth()
	blockX := c.Left()

	method := p.MethodLabel
	if method == "" {
		method = p.Method
	}
	y = amountRow(c, y, blockX, blockW, "Payment", method, body, body)
	if p.CardBrand != "" || p.CardLast4 != "" {
		y = amountRow(c, y, blockX, blockW, "Card", maskedCard(p), body, body)
	}
	y = amountRow(c, y, blockX, blockW, "Amount Paid", money(p.AmountPaid, b), body, body)
	if p.ChangeDue > 0 {
		y = amountRow(c, y, blockX, blockW, "Change", money(p.ChangeDue, b), body, body)
	}
	if p.TransactionID != "" {
		y = c.Text(blockX, y, "Transaction: "+p.TransactionID, TextStyle{Size: 7, Color: colorMuted})
	}
	return y + 4
}

func (t *receiptTemplate) drawFooter(c *Canvas, y Cursor, data *ReceiptData) Cursor {
	b := data.BusinessInfo

	y = c.CenteredText(y+2, "Thank you for your business!", TextStyle{Size: 8, Color: colorText})
	if data.FooterMessage != "" {
		y = c.CenteredText(y, data.FooterMessage, TextStyle{Size: 7, Color: colorText})
	}
	if b.TaxID != "" {
		y = c.CenteredText(y, "Tax ID: "+b.TaxID, TextStyle{Size: 7, Color: colorMuted})
	}
	y = c.CenteredText(y, "Generated "+format.FormatDateTime(data.GeneratedAt, b.Locale),
		TextStyle{Size: 7, Color: colorMuted})

	if data.TrackingURL != "" {
		if png, err := qrcode.Encode(data.TrackingURL, qrcode.Medium, 128); err == nil {
			const qrSize = 52.0
			x := c.Left() + (c.ContentWidth()-qrSize)/2
			c.ImagePNG("receipt-tracking-qr", bytes.NewReader(png), x, y+4, qrSize, qrSize)
			y += qrSize + 8
		}
	}
	return y
}

// amountRow draws a label on the left edge of a block and a value on the
// right edge, on one line.
func amountRow(c *Canvas, y Cursor, blockX, blockW float64, label, value string, labelStyle, valueStyle TextStyle) Cursor {
	c.TextIn(blockX, blockW, y, label, labelStyle, AlignLeft)
	return c.TextIn(blockX, blockW, y, value, valueStyle, AlignRight)
}

func money(v float64, b BusinessInfo) string {
	return format.FormatCurrency(v, format.CurrencyOptions{Currency: b.Currency, Locale: b.Locale})
}

// taxLabel includes the percentage when the rate is nonzero.
func taxLabel(rate float64) string {
	if rate == 0 {
		return "Tax"
	}
	return fmt.Sprintf("Tax (%g%%)", rate*100)
}

func maskedCard(p PaymentData) string {
	switch {
	case p.CardBrand != "" && p.CardLast4 != "":
		return fmt.Sprintf("%s ****%s", p.CardBrand, p.CardLast4)
	case p.CardLast4 != "":
		return "****" + p.CardLast4
	default:
		return p.CardBrand
	}
}

func contactLine(b BusinessInfo) string {
	switch {
	case b.Phone != "" && b.Email != "":
		return b.Phone + "  |  " + b.Email
	case b.Phone != "":
		return b.Phone
	default:
		return b.Email
	}
}
