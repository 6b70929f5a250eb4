package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tillpoint/pos-api/internal/application/service"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/presentation/http/dto/response"
)

// PriceHistoryHandler serves the price history and trend endpoints
type PriceHistoryHandler struct {
	priceHistoryService *service.PriceHistoryService
}

// NewPriceHistoryHandler creates a new price history handler
func NewPriceHistoryHandler(priceHistoryService *service.PriceHistoryService) *PriceHistoryHandler {
	return &PriceHistoryHandler{priceHistoryService: priceHistoryService}
}

// History returns a product's raw price change log. Supports ?type=
// (selling or cost) and ?days= filters.
func (h *PriceHistoryHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var changeType *enum.PriceChangeType
	switch c.Query("type") {
	case "":
	case "selling":
		t := enum.PriceChangeSelling
		changeType = &t
	case "cost":
		t := enum.PriceChangeCost
		changeType = &t
	default:
		response.BadRequest(c, "Invalid type, expected selling or cost")
		return
	}

	records, err := h.priceHistoryService.GetProductHistory(c.Request.Context(), id, changeType, parseIntQuery(c, "days", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price history retrieved successfully", records)
}

// MarginTrend classifies a product's margin movement over ?days= (default 90)
func (h *PriceHistoryHandler) MarginTrend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	trend, err := h.priceHistoryService.GetMarginTrend(c.Request.Context(), id, parseIntQuery(c, "days", 90))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Margin trend retrieved successfully", trend)
}

// CostTrend classifies a product's cost movement over ?days= (default 90)
func (h *PriceHistoryHandler) CostTrend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	trend, err := h.priceHistoryService.GetCostTrend(c.Request.Context(), id, parseIntQuery(c, "days", 90))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cost trend retrieved successfully", trend)
}

// ErosionAlerts returns products whose margin eroded by at least
// ?threshold= points inside the erosion window, worst first. Without a
// threshold the configured margin threshold applies.
func (h *PriceHistoryHandler) ErosionAlerts(c *gin.Context) {
	alerts, err := h.priceHistoryService.GetMarginErosionAlerts(c.Request.Context(), parseFloatQuery(c, "threshold", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Margin erosion alerts retrieved successfully", alerts)
}

// Volatility summarizes price movement across all products over ?days=
// (default 90): overall counts and average absolute change, plus the
// ?limit= (default 10) largest increases and decreases.
func (h *PriceHistoryHandler) Volatility(c *gin.Context) {
	report, err := h.priceHistoryService.GetPriceVolatilityReport(
		c.Request.Context(),
		parseIntQuery(c, "days", 90),
		parseIntQuery(c, "limit", 10),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Price volatility report retrieved successfully", report)
}
