package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/application/service"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/presentation/http/dto/request"
	"github.com/tillpoint/pos-api/internal/presentation/http/dto/response"
	"github.com/tillpoint/pos-api/pkg/pagination"
	"github.com/tillpoint/pos-api/pkg/pdfgen"
)

// OrderHandler handles order-related HTTP requests, including the PDF
// receipt and invoice endpoints.
type OrderHandler struct {
	orderService    *service.OrderService
	documentService *service.DocumentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, documentService *service.DocumentService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		documentService: documentService,
	}
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	method, ok := enum.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
			Modifiers: item.Modifiers,
			Note:      item.Note,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CustomerID:    req.CustomerID,
		Items:         items,
		Discount:      req.Discount,
		Tip:           req.Tip,
		PaymentMethod: method,
		AmountPaid:    req.AmountPaid,
		TransactionID: req.TransactionID,
		CardBrand:     req.CardBrand,
		CardLast4:     req.CardLast4,
		CashierName:   req.CashierName,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// GetByNumber handles looking up an order by its order number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		response.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetOrderByNumber(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	input := &service.ListOrdersInput{
		Pagination: params,
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if filter.Status != "" {
		status, ok := enum.ParseOrderStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid order status")
			return
		}
		input.Status = &status
	}
	if filter.CustomerID != "" {
		customerID, err := uuid.Parse(filter.CustomerID)
		if err == nil {
			input.CustomerID = &customerID
		}
	}
	if filter.StartDate != "" {
		start, err := time.Parse("2006-01-02", filter.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		input.StartDate = &start
	}
	if filter.EndDate != "" {
		end, err := time.Parse("2006-01-02", filter.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		// Make the end date inclusive of the whole day.
		end = end.AddDate(0, 0, 1)
		input.EndDate = &end
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	params.Validate()
	result := pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Cancel handles cancelling an order and restocking its items
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// Receipt streams the order's receipt as a PDF. The optional ?size= query
// selects the page geometry (a4, letter, receipt).
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receipt, err := h.documentService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", receipt.Order.OrderNumber)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	if err := h.documentService.Stream(receipt, c.Writer, parsePageSize(c, pdfgen.PageSizeReceipt)); err != nil {
		// Headers may already be on the wire; abort rather than send JSON.
		_ = c.Error(err)
		c.Abort()
	}
}

// Invoice streams the order's invoice as a PDF.
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	invoice, err := h.documentService.BuildInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s.pdf", invoice.InvoiceNumber)
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	if err := h.documentService.Stream(invoice, c.Writer, parsePageSize(c, pdfgen.PageSizeA4)); err != nil {
		_ = c.Error(err)
		c.Abort()
	}
}
