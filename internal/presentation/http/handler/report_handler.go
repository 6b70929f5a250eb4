package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/pos-api/internal/application/service"
	"github.com/tillpoint/pos-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/pos-api/pkg/pdfgen"
)

// ReportHandler serves the PDF report endpoints
type ReportHandler struct {
	documentService *service.DocumentService
}

// NewReportHandler creates a new report handler
func NewReportHandler(documentService *service.DocumentService) *ReportHandler {
	return &ReportHandler{documentService: documentService}
}

func (h *ReportHandler) stream(c *gin.Context, doc pdfgen.Document, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	if err := h.documentService.Stream(doc, c.Writer, parsePageSize(c, pdfgen.PageSizeA4)); err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}

// DailySummary streams the end-of-day summary PDF. The ?date= query
// selects the day; it defaults to today.
func (h *ReportHandler) DailySummary(c *gin.Context) {
	day, ok := parseDateQuery(c, "date")
	if !ok {
		if c.Query("date") != "" {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		day = time.Now()
	}

	doc, err := h.documentService.BuildDailySummary(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.stream(c, doc, fmt.Sprintf("daily-summary-%s.pdf", day.Format("2006-01-02")))
}

// Inventory streams the stock valuation PDF
func (h *ReportHandler) Inventory(c *gin.Context) {
	doc, err := h.documentService.BuildInventoryReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.stream(c, doc, fmt.Sprintf("inventory-%s.pdf", time.Now().Format("2006-01-02")))
}

// Sales streams the period sales PDF. Requires ?from= and ?to= dates;
// the window is inclusive of both days.
func (h *ReportHandler) Sales(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		response.BadRequest(c, "Missing or invalid from date, expected YYYY-MM-DD")
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		response.BadRequest(c, "Missing or invalid to date, expected YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		response.BadRequest(c, "to date must not be before from date")
		return
	}

	doc, err := h.documentService.BuildSalesReport(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s-to-%s.pdf", from.Format("2006-01-02"), to.Format("2006-01-02"))
	h.stream(c, doc, filename)
}
