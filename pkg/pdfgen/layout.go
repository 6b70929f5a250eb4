package pdfgen

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Cursor is the vertical layout position on a page, in points from the top.
// Section renderers take a cursor and return the advanced cursor instead of
// mutating shared state, so each section's vertical consumption is an
// explicit function of its input.
type Cursor = float64

// RGB is a 0-255 color triple.
type RGB struct {
	R, G, B int
}

var (
	colorText      = RGB{30, 30, 30}
	colorMuted     = RGB{120, 120, 120}
	colorAccent    = RGB{192, 57, 43}
	colorHeaderBg  = RGB{232, 232, 232}
	colorRowAltBg  = RGB{247, 247, 247}
	colorTotalBg   = RGB{40, 40, 40}
	colorWhite     = RGB{255, 255, 255}
	colorPaidGreen = RGB{39, 139, 77}
	colorRule      = RGB{180, 180, 180}
)

// Align selects horizontal text placement within a box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle is the font and color applied to a single draw call.
type TextStyle struct {
	Style string // "", "B", "I"
	Size  float64
	Color RGB
}

const defaultFontFamily = "Helvetica"

// lineHeight is the fixed per-line advance for a font size.
func lineHeight(size float64) float64 {
	return size * 1.45
}

// Canvas is the page-drawing context handed to templates. It owns the
// underlying PDF page, its geometry and drawing state; the vertical cursor is
// deliberately NOT part of it.
type Canvas struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	pageW  float64
	pageH  float64
	margin float64
}

func newCanvas(pdf *gofpdf.Fpdf, margin float64) *Canvas {
	w, h := pdf.GetPageSize()
	return &Canvas{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		pageW:  w,
		pageH:  h,
		margin: margin,
	}
}

// Left returns the x coordinate of the left content edge.
func (c *Canvas) Left() float64 { return c.margin }

// Right returns the x coordinate of the right content edge.
func (c *Canvas) Right() float64 { return c.pageW - c.margin }

// ContentWidth returns the usable width between the margins.
func (c *Canvas) ContentWidth() float64 { return c.pageW - 2*c.margin }

// Top returns the cursor positioned at the top content edge.
func (c *Canvas) Top() Cursor { return c.margin }

func (c *Canvas) applyStyle(st TextStyle) {
	size := st.Size
	if size == 0 {
		size = 9
	}
	c.pdf.SetFont(defaultFontFamily, st.Style, size)
	c.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
}

// styleSize returns the effective font size of a style.
func styleSize(st TextStyle) float64 {
	if st.Size == 0 {
		return 9
	}
	return st.Size
}

// Text draws s left-aligned with its top edge at y, starting at x, and
// returns the cursor below the drawn line.
func (c *Canvas) Text(x float64, y Cursor, s string, st TextStyle) Cursor {
	return c.TextIn(x, c.Right()-x, y, s, st, AlignLeft)
}

// TextIn draws s inside the horizontal box [x, x+width) with the given
// alignment and returns the cursor below the drawn line.
func (c *Canvas) TextIn(x, width float64, y Cursor, s string, st TextStyle, align Align) Cursor {
	c.applyStyle(st)
	size := styleSize(st)
	tw := c.pdf.GetStringWidth(c.tr(s))
	switch align {
	case AlignCenter:
		x += (width - tw) / 2
	case AlignRight:
		x += width - tw
	}
	c.pdf.Text(x, y+size, c.tr(s))
	return y + lineHeight(size)
}

// CenteredText draws s centered across the full content width.
func (c *Canvas) CenteredText(y Cursor, s string, st TextStyle) Cursor {
	return c.TextIn(c.Left(), c.ContentWidth(), y, s, st, AlignCenter)
}

// StringWidth measures s in the given style.
func (c *Canvas) StringWidth(s string, st TextStyle) float64 {
	c.applyStyle(st)
	return c.pdf.GetStringWidth(c.tr(s))
}

// FillRect draws a filled rectangle. Shaded table rows are drawn as a filled
// rect behind the text rather than via any stateful row style.
func (c *Canvas) FillRect(x float64, y Cursor, w, h float64, fill RGB) {
	c.pdf.SetFillColor(fill.R, fill.G, fill.B)
	c.pdf.Rect(x, y, w, h, "F")
}

// StrokeRect draws a rectangle outline.
func (c *Canvas) StrokeRect(x float64, y Cursor, w, h float64, col RGB, width float64) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Rect(x, y, w, h, "D")
}

// Rule draws a horizontal line across the content width and returns the
// cursor just below it.
func (c *Canvas) Rule(y Cursor, col RGB, width float64) Cursor {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(c.Left(), y, c.Right(), y)
	return y + width + 3
}

// ImagePNG registers and places a PNG read from r. The name must be unique
// within the document.
func (c *Canvas) ImagePNG(name string, r io.Reader, x float64, y Cursor, w, h float64) {
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opt, r)
	c.pdf.ImageOptions(name, x, y, w, h, false, opt, 0, "")
}

// Err surfaces any error the underlying PDF library has latched.
func (c *Canvas) Err() error {
	if c.pdf.Err() {
		return c.pdf.Error()
	}
	return nil
}
