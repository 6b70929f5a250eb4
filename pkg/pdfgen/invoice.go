package pdfgen

import (
	"fmt"
	"strings"

	"github.com/tillpoint/pos-api/pkg/format"
)

// invoiceTemplate lays out full-page invoices with a tabular item grid.
type invoiceTemplate struct{}

// NewInvoiceTemplate creates the built-in invoice template.
func NewInvoiceTemplate() Template {
	return &invoiceTemplate{}
}

func (t *invoiceTemplate) DocumentType() DocumentType {
	return DocumentTypeInvoice
}

func (t *invoiceTemplate) Generate(c *Canvas, doc Document) error {
	data, ok := doc.(*InvoiceData)
	if !ok {
		return fmt.Errorf("invoice template: unexpected document data %T", doc)
	}

	y := c.Top()
	y = t.drawHeader(c, y, data)
	y = t.drawParties(c, y, data)
	y = t.drawItems(c, y, data)
	y = t.drawTotals(c, y, data)
	y = t.drawTermsAndNotes(c, y, data)
	t.drawFooter(c, y, data)

	return c.Err()
}

func (t *invoiceTemplate) drawHeader(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	b := data.BusinessInfo

	// Business identity on the left, a large document title on the right.
	left := y
	left = c.Text(c.Left(), left, b.Name, TextStyle{Style: "B", Size: 14, Color: colorText})
	if b.Address != "" {
		left = c.Text(c.Left(), left, b.Address, TextStyle{Size: 9, Color: colorText})
	}
	if contact := contactLine(b); contact != "" {
		left = c.Text(c.Left(), left, contact, TextStyle{Size: 9, Color: colorMuted})
	}
	if b.Website != "" {
		left = c.Text(c.Left(), left, b.Website, TextStyle{Size: 9, Color: colorMuted})
	}

	c.TextIn(c.Left(), c.ContentWidth(), y, "INVOICE",
		TextStyle{Style: "B", Size: 24, Color: colorHeaderText()}, AlignRight)

	right := y + lineHeight(24) + 2
	meta := TextStyle{Size: 9, Color: colorText}
	right = c.TextIn(c.Left(), c.ContentWidth(), right,
		"Invoice #"+data.InvoiceNumber, meta, AlignRight)
	right = c.TextIn(c.Left(), c.ContentWidth(), right,
		"Date: "+format.FormatDate(data.InvoiceDate, b.Locale), meta, AlignRight)

	dueStyle := meta
	dueLabel := "Due: " + format.FormatDate(data.DueDate, b.Locale)
	if t.isOverdue(data) {
		dueStyle = TextStyle{Style: "B", Size: 9, Color: colorAccent}
		dueLabel += " (OVERDUE)"
	}
	right = c.TextIn(c.Left(), c.ContentWidth(), right, dueLabel, dueStyle, AlignRight)

	y = left
	if right > y {
		y = right
	}
	return c.Rule(y+6, colorRule, 1) + 4
}

// isOverdue is judged against the document's generation time, not the wall
// clock, so regenerating an old invoice reproduces it exactly.
func (t *invoiceTemplate) isOverdue(data *InvoiceData) bool {
	return !data.Paid && data.DueDate.Before(data.GeneratedAt)
}

func (t *invoiceTemplate) drawParties(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	label := TextStyle{Style: "B", Size: 8, Color: colorMuted}
	body := TextStyle{Size: 9, Color: colorText}
	colW := c.ContentWidth() / 2
	rightX := c.Left() + colW

	left := c.Text(c.Left(), y, "FROM", label)
	left = c.Text(c.Left(), left, data.BusinessInfo.Name, body)
	if data.BusinessInfo.Address != "" {
		left = c.Text(c.Left(), left, data.BusinessInfo.Address, body)
	}
	if data.BusinessInfo.TaxID != "" {
		left = c.Text(c.Left(), left, "Tax ID: "+data.BusinessInfo.TaxID, body)
	}

	right := y
	if bt := data.BillTo; bt != nil {
		right = c.Text(rightX, right, "BILL TO", label)
		right = c.Text(rightX, right, bt.Name, body)
		if bt.Address != "" {
			right = c.Text(rightX, right, bt.Address, body)
		}
		if bt.Email != "" {
			right = c.Text(rightX, right, bt.Email, body)
		}
		if bt.Phone != "" {
			right = c.Text(rightX, right, bt.Phone, body)
		}
	}

	y = left
	if right > y {
		y = right
	}
	return y + 10
}

// invoice item table column fractions of the content width
const (
	invoiceDescFrac = 0.52
	invoiceQtyFrac  = 0.10
	invoiceUnitFrac = 0.18
)

func (t *invoiceTemplate) drawItems(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	b := data.BusinessInfo
	w := c.ContentWidth()
	descW := w * invoiceDescFrac
	qtyW := w * invoiceQtyFrac
	unitW := w * invoiceUnitFrac
	amountW := w - descW - qtyW - unitW

	descX := c.Left()
	qtyX := descX + descW
	unitX := qtyX + qtyW
	amountX := unitX + unitW

	const cellPad = 4.0
	headStyle := TextStyle{Style: "B", Size: 9, Color: colorText}
	rowH := lineHeight(9) + 2*cellPad

	c.FillRect(c.Left(), y, w, rowH, colorHeaderBg)
	c.TextIn(descX+cellPad, descW-2*cellPad, y+cellPad, "Description", headStyle, AlignLeft)
	c.TextIn(qtyX, qtyW-cellPad, y+cellPad, "Qty", headStyle, AlignRight)
	c.TextIn(unitX, unitW-cellPad, y+cellPad, "Unit Price", headStyle, AlignRight)
	c.TextIn(amountX, amountW-cellPad, y+cellPad, "Amount", headStyle, AlignRight)
	y += rowH

	body := TextStyle{Size: 9, Color: colorText}
	sub := TextStyle{Size: 8, Color: colorMuted}

	for i, item := range data.Order.Items {
		rows := 1
		if item.SKU != "" {
			rows++
		}
		if len(item.Modifiers) > 0 {
			rows++
		}
		itemH := lineHeight(9) + 2*cellPad + float64(rows-1)*lineHeight(8)

		if i%2 == 1 {
			c.FillRect(c.Left(), y, w, itemH, colorRowAltBg)
		}

		line := y + cellPad
		c.TextIn(qtyX, qtyW-cellPad, line, fmt.Sprintf("%d", item.Quantity), body, AlignRight)
		c.TextIn(unitX, unitW-cellPad, line, money(item.UnitPrice, b), body, AlignRight)
		c.TextIn(amountX, amountW-cellPad, line, money(item.Total, b), body, AlignRight)
		line = c.TextIn(descX+cellPad, descW-2*cellPad, line, item.Name, body, AlignLeft)

		if item.SKU != "" {
			line = c.Text(descX+cellPad, line, "SKU: "+item.SKU, sub)
		}
		if len(item.Modifiers) > 0 {
			c.Text(descX+cellPad, line, strings.Join(item.Modifiers, ", "), sub)
		}
		y += itemH
	}
	return c.Rule(y, colorRule, 0.8) + 6
}

func (t *invoiceTemplate) drawTotals(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	b := data.BusinessInfo
	order := data.Order
	blockW := c.ContentWidth() * 0.4
	blockX := c.Right() - blockW
	body := TextStyle{Size: 9, Color: colorText}

	y = amountRow(c, y, blockX, blockW, "Subtotal", money(order.Subtotal, b), body, body)
	if order.Discount > 0 {
		tinted := TextStyle{Size: 9, Color: colorAccent}
		y = amountRow(c, y, blockX, blockW, "Discount", "-"+money(order.Discount, b), tinted, tinted)
	}
	y = amountRow(c, y, blockX, blockW, taxLabel(order.TaxRate), money(order.TaxAmount, b), body, body)
	if order.Tip > 0 {
		y = amountRow(c, y, blockX, blockW, "Tip", money(order.Tip, b), body, body)
	}

	// Grand total in a dark filled box with white text.
	const boxPad = 5.0
	boxH := lineHeight(11) + 2*boxPad
	c.FillRect(blockX, y+2, blockW, boxH, colorTotalBg)
	emphasis := TextStyle{Style: "B", Size: 11, Color: colorWhite}
	c.TextIn(blockX+boxPad, blockW-2*boxPad, y+2+boxPad, "TOTAL DUE", emphasis, AlignLeft)
	c.TextIn(blockX+boxPad, blockW-2*boxPad, y+2+boxPad, money(order.Total, b), emphasis, AlignRight)
	y += 2 + boxH

	if data.Paid {
		y = t.drawPaidStamp(c, y+8)
	}
	return y + 10
}

func (t *invoiceTemplate) drawPaidStamp(c *Canvas, y Cursor) Cursor {
	st := TextStyle{Style: "B", Size: 14, Color: colorPaidGreen}
	const pad = 6.0
	w := c.StringWidth("PAID", st) + 2*pad
	h := lineHeight(14) + pad
	x := c.Right() - w
	c.StrokeRect(x, y, w, h, colorPaidGreen, 1.5)
	c.TextIn(x, w, y+pad/2+2, "PAID", st, AlignCenter)
	return y + h
}

func (t *invoiceTemplate) drawTermsAndNotes(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	label := TextStyle{Style: "B", Size: 8, Color: colorMuted}
	body := TextStyle{Size: 9, Color: colorText}

	if data.Terms != "" {
		y = c.Text(c.Left(), y, "PAYMENT TERMS", label)
		y = c.Text(c.Left(), y, data.Terms, body) + 6
	}
	if data.Notes != "" {
		y = c.Text(c.Left(), y, "NOTES", label)
		y = c.Text(c.Left(), y, data.Notes, body) + 6
	}
	return y
}

func (t *invoiceTemplate) drawFooter(c *Canvas, y Cursor, data *InvoiceData) Cursor {
	b := data.BusinessInfo
	y = c.Rule(y+6, colorRule, 0.6)
	y = c.CenteredText(y+2, "Thank you for your business!", TextStyle{Size: 9, Color: colorText})
	if b.TaxID != "" {
		y = c.CenteredText(y, "Tax ID: "+b.TaxID, TextStyle{Size: 7, Color: colorMuted})
	}
	return c.CenteredText(y, "Generated "+format.FormatDateTime(data.GeneratedAt, b.Locale),
		TextStyle{Size: 7, Color: colorMuted})
}

// colorHeaderText is the large title color, slightly lifted from body text.
func colorHeaderText() RGB {
	return RGB{70, 70, 70}
}
