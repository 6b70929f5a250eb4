package pdfgen

import (
	"fmt"

	"github.com/tillpoint/pos-api/pkg/format"
)

// Report templates share a common header and a simple column-table helper.
// They are deliberately plainer than receipts and invoices: back-office
// documents printed on full pages.

type tableColumn struct {
	title string
	frac  float64 // fraction of the content width
	align Align
}

// reportHeader draws the business name, a report title and a subtitle, then
// a rule.
func reportHeader(c *Canvas, y Cursor, b BusinessInfo, title, subtitle string) Cursor {
	y = c.Text(c.Left(), y, b.Name, TextStyle{Style: "B", Size: 13, Color: colorText})
	y = c.Text(c.Left(), y, title, TextStyle{Style: "B", Size: 11, Color: colorHeaderText()})
	if subtitle != "" {
		y = c.Text(c.Left(), y, subtitle, TextStyle{Size: 9, Color: colorMuted})
	}
	return c.Rule(y+4, colorRule, 1) + 6
}

// reportTable draws a shaded header row followed by the given rows, with
// alternating row shading. Each row must have one cell per column.
func reportTable(c *Canvas, y Cursor, cols []tableColumn, rows [][]string) Cursor {
	w := c.ContentWidth()
	const cellPad = 4.0
	rowH := lineHeight(9) + 2*cellPad

	c.FillRect(c.Left(), y, w, rowH, colorHeaderBg)
	x := c.Left()
	head := TextStyle{Style: "B", Size: 9, Color: colorText}
	for _, col := range cols {
		colW := w * col.frac
		c.TextIn(x+cellPad, colW-2*cellPad, y+cellPad, col.title, head, col.align)
		x += colW
	}
	y += rowH

	body := TextStyle{Size: 9, Color: colorText}
	for i, row := range rows {
		if i%2 == 1 {
			c.FillRect(c.Left(), y, w, rowH, colorRowAltBg)
		}
		x = c.Left()
		for j, col := range cols {
			colW := w * col.frac
			c.TextIn(x+cellPad, colW-2*cellPad, y+cellPad, row[j], body, col.align)
			x += colW
		}
		y += rowH
	}
	return c.Rule(y, colorRule, 0.8) + 6
}

// summaryRow draws a label/value pair across a right-hand block.
func summaryRow(c *Canvas, y Cursor, label, value string, emphasized bool) Cursor {
	st := TextStyle{Size: 9, Color: colorText}
	if emphasized {
		st = TextStyle{Style: "B", Size: 10, Color: colorText}
	}
	blockW := c.ContentWidth() * 0.4
	return amountRow(c, y, c.Right()-blockW, blockW, label, value, st, st)
}

type dailySummaryTemplate struct{}

// NewDailySummaryTemplate creates the built-in end-of-day summary template.
func NewDailySummaryTemplate() Template {
	return &dailySummaryTemplate{}
}

func (t *dailySummaryTemplate) DocumentType() DocumentType {
	return DocumentTypeDailySummary
}

func (t *dailySummaryTemplate) Generate(c *Canvas, doc Document) error {
	data, ok := doc.(*DailySummaryData)
	if !ok {
		return fmt.Errorf("daily summary template: unexpected document data %T", doc)
	}
	b := data.BusinessInfo

	y := c.Top()
	y = reportHeader(c, y, b, "Daily Summary", format.FormatDate(data.Date, b.Locale))

	y = summaryRow(c, y, "Orders", fmt.Sprintf("%d", data.OrderCount), false)
	y = summaryRow(c, y, "Gross Sales", money(data.GrossSales, b), false)
	y = summaryRow(c, y, "Discounts", "-"+money(data.Discounts, b), false)
	y = summaryRow(c, y, "Tax Collected", money(data.Tax, b), false)
	if data.Tips > 0 {
		y = summaryRow(c, y, "Tips", money(data.Tips, b), false)
	}
	y = summaryRow(c, y+2, "Net Sales", money(data.NetSales, b), true) + 10

	if len(data.Payments) > 0 {
		y = c.Text(c.Left(), y, "PAYMENTS", TextStyle{Style: "B", Size: 8, Color: colorMuted})
		rows := make([][]string, 0, len(data.Payments))
		for _, p := range data.Payments {
			rows = append(rows, []string{p.Label, fmt.Sprintf("%d", p.Count), money(p.Amount, b)})
		}
		y = reportTable(c, y+2, []tableColumn{
			{title: "Method", frac: 0.5, align: AlignLeft},
			{title: "Count", frac: 0.2, align: AlignRight},
			{title: "Amount", frac: 0.3, align: AlignRight},
		}, rows) + 4
	}

	if len(data.TopItems) > 0 {
		y = c.Text(c.Left(), y, "TOP ITEMS", TextStyle{Style: "B", Size: 8, Color: colorMuted})
		rows := make([][]string, 0, len(data.TopItems))
		for _, it := range data.TopItems {
			rows = append(rows, []string{it.Name, fmt.Sprintf("%d", it.Quantity), money(it.Amount, b)})
		}
		y = reportTable(c, y+2, []tableColumn{
			{title: "Item", frac: 0.5, align: AlignLeft},
			{title: "Sold", frac: 0.2, align: AlignRight},
			{title: "Revenue", frac: 0.3, align: AlignRight},
		}, rows)
	}

	c.CenteredText(y+4, "Generated "+format.FormatDateTime(data.GeneratedAt, b.Locale),
		TextStyle{Size: 7, Color: colorMuted})
	return c.Err()
}

type inventoryReportTemplate struct{}

// NewInventoryReportTemplate creates the built-in stock valuation template.
func NewInventoryReportTemplate() Template {
	return &inventoryReportTemplate{}
}

func (t *inventoryReportTemplate) DocumentType() DocumentType {
	return DocumentTypeInventoryReport
}

func (t *inventoryReportTemplate) Generate(c *Canvas, doc Document) error {
	data, ok := doc.(*InventoryReportData)
	if !ok {
		return fmt.Errorf("inventory report template: unexpected document data %T", doc)
	}
	b := data.BusinessInfo

	y := c.Top()
	y = reportHeader(c, y, b, "Inventory Report",
		"As of "+format.FormatDate(data.GeneratedAt, b.Locale))

	rows := make([][]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		name := r.Name
		if r.LowStock {
			name += " (LOW)"
		}
		rows = append(rows, []string{
			name, r.SKU, fmt.Sprintf("%d", r.Quantity), money(r.UnitCost, b), money(r.Value, b),
		})
	}
	y = reportTable(c, y, []tableColumn{
		{title: "Product", frac: 0.36, align: AlignLeft},
		{title: "SKU", frac: 0.18, align: AlignLeft},
		{title: "On Hand", frac: 0.12, align: AlignRight},
		{title: "Unit Cost", frac: 0.16, align: AlignRight},
		{title: "Value", frac: 0.18, align: AlignRight},
	}, rows)

	y = summaryRow(c, y, "Total Items", fmt.Sprintf("%d", data.TotalItems), false)
	y = summaryRow(c, y, "Total Value", money(data.TotalValue, b), true)

	c.CenteredText(y+6, "Generated "+format.FormatDateTime(data.GeneratedAt, b.Locale),
		TextStyle{Size: 7, Color: colorMuted})
	return c.Err()
}

type salesReportTemplate struct{}

// NewSalesReportTemplate creates the built-in period sales template.
func NewSalesReportTemplate() Template {
	return &salesReportTemplate{}
}

func (t *salesReportTemplate) DocumentType() DocumentType {
	return DocumentTypeSalesReport
}

func (t *salesReportTemplate) Generate(c *Canvas, doc Document) error {
	data, ok := doc.(*SalesReportData)
	if !ok {
		return fmt.Errorf("sales report template: unexpected document data %T", doc)
	}
	b := data.BusinessInfo

	y := c.Top()
	subtitle := fmt.Sprintf("%s - %s",
		format.FormatDate(data.From, b.Locale), format.FormatDate(data.To, b.Locale))
	y = reportHeader(c, y, b, "Sales Report", subtitle)

	rows := make([][]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		rows = append(rows, []string{
			format.FormatDate(r.Date, b.Locale), fmt.Sprintf("%d", r.Orders), money(r.Revenue, b),
		})
	}
	y = reportTable(c, y, []tableColumn{
		{title: "Date", frac: 0.4, align: AlignLeft},
		{title: "Orders", frac: 0.25, align: AlignRight},
		{title: "Revenue", frac: 0.35, align: AlignRight},
	}, rows)

	y = summaryRow(c, y, "Total Orders", fmt.Sprintf("%d", data.TotalOrders), false)
	y = summaryRow(c, y, "Average Order", money(data.AverageOrder, b), false)
	y = summaryRow(c, y, "Total Revenue", money(data.TotalRevenue, b), true)

	c.CenteredText(y+6, "Generated "+format.FormatDateTime(data.GeneratedAt, b.Locale),
		TextStyle{Size: 7, Color: colorMuted})
	return c.Err()
}
