package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
	"github.com/tillpoint/pos-api/pkg/pagination"
	"github.com/tillpoint/pos-api/pkg/utils"
)

// OrderService handles order-related operations
type OrderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Discount  float64
	Modifiers []string
	Note      *string
}

// CreateOrderInput represents the create order input. Prices come from the
// catalog, never from the client.
type CreateOrderInput struct {
	CustomerID    *uuid.UUID
	Items         []OrderItemInput
	Discount      float64
	Tip           float64
	PaymentMethod enum.PaymentMethod
	AmountPaid    float64
	TransactionID *string
	CardBrand     *string
	CardLast4     *string
	CashierName   *string
	Notes         *string
}

// CreateOrder creates a new order with its items, decrementing stock.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order must contain at least one item")
	}

	// Validate customer if provided
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	taxRate := 0.0
	if settings != nil {
		taxRate = settings.TaxRate
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subtotal int64
	var itemDiscounts int64
	items := make([]entity.OrderItem, 0, len(input.Items))
	stockDecrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not for sale", product.Name))
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}

		discountCents := toCents(item.Discount)
		lineTotal := product.SellingPrice*int64(item.Quantity) - discountCents
		if lineTotal < 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Discount exceeds line total for %s", product.Name))
		}
		subtotal += product.SellingPrice * int64(item.Quantity)
		itemDiscounts += discountCents

		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			SKU:       product.SKU,
			Quantity:  item.Quantity,
			UnitPrice: product.SellingPrice,
			Discount:  discountCents,
			Total:     lineTotal,
			Modifiers: item.Modifiers,
			Note:      item.Note,
		})

		stockDecrements[product.ID] += item.Quantity
	}

	discount := itemDiscounts + toCents(input.Discount)
	if discount > subtotal {
		return nil, apperror.NewBadRequestError("Discount exceeds order subtotal")
	}

	taxAmount := roundCents(float64(subtotal-discount) * taxRate)
	tip := toCents(input.Tip)
	total := subtotal - discount + taxAmount + tip

	amountPaid := toCents(input.AmountPaid)
	if amountPaid < total {
		return nil, apperror.NewBadRequestError("Amount paid is less than the order total")
	}
	changeDue := int64(0)
	if input.PaymentMethod == enum.PaymentMethodCash {
		changeDue = amountPaid - total
	}

	// Atomically decrement stock; if any product has insufficient stock
	// the whole batch is rolled back.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		for _, id := range failedIDs {
			if p, ok := productMap[id]; ok {
				names = append(names, p.Name)
			}
		}
		return nil, apperror.NewConflictError("Insufficient stock: " + strings.Join(names, ", "))
	}

	now := time.Now()
	seq, err := s.orderRepo.CountForDay(ctx, now)
	if err != nil {
		s.restock(ctx, stockDecrements)
		return nil, err
	}

	order := &entity.Order{
		CustomerID:    input.CustomerID,
		OrderNumber:   utils.GenerateOrderNumber(now, seq+1),
		Status:        enum.OrderStatusCompleted,
		Subtotal:      subtotal,
		Discount:      discount,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		Tip:           tip,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		AmountPaid:    amountPaid,
		ChangeDue:     changeDue,
		TransactionID: input.TransactionID,
		CardBrand:     input.CardBrand,
		CardLast4:     input.CardLast4,
		CashierName:   input.CashierName,
		Notes:         input.Notes,
		Items:         items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Return stock on failure so the decrement does not leak.
		s.restock(ctx, stockDecrements)
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

func (s *OrderService) restock(ctx context.Context, decrements map[uuid.UUID]int) {
	_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// ListOrdersInput represents order listing filters
type ListOrdersInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// ListOrders returns orders matching the filters
func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) ([]entity.Order, int64, error) {
	return s.orderRepo.List(ctx, &repository.OrderFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
}

// CancelOrder cancels an order and returns its items to stock.
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return apperror.NewConflictError("Order is already cancelled")
	}

	increments := make(map[uuid.UUID]int, len(order.Items))
	for _, item := range order.Items {
		increments[item.ProductID] += item.Quantity
	}
	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return err
	}

	return s.orderRepo.UpdateStatus(ctx, id, enum.OrderStatusCancelled)
}

// toCents converts a decimal amount to cents with half-up rounding.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// roundCents rounds a fractional cent amount to whole cents.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
