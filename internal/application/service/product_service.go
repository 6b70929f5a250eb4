package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/pkg/apperror"
	"github.com/tillpoint/pos-api/pkg/pagination"
	"github.com/tillpoint/pos-api/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	priceHistory *PriceHistoryService
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	priceHistory *PriceHistoryService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		priceHistory: priceHistory,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID    *uuid.UUID
	Name          string
	SKU           string
	Description   *string
	Quantity      int
	QuantityAlert int
	CostPrice     float64
	SellingPrice  float64
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	// Auto-generate SKU if not provided
	sku := input.SKU
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	// Check if SKU already exists
	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product SKU already exists")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		SKU:           sku,
		Description:   input.Description,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		IsActive:      true,
	}
	product.SetCostPriceFromDecimal(input.CostPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductBySKU retrieves a product by SKU
func (s *ProductService) GetProductBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProductsInput represents product listing filters
type ListProductsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}

// ListProducts returns products matching the filters
func (s *ProductService) ListProducts(ctx context.Context, input *ListProductsInput) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, &repository.ProductFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		CategoryID: input.CategoryID,
		LowStock:   input.LowStock,
		ActiveOnly: input.ActiveOnly,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	})
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	CategoryID        *uuid.UUID
	Name              *string
	Description       *string
	QuantityAlert     *int
	CostPrice         *float64
	SellingPrice      *float64
	IsActive          *bool
	PriceChangeReason *string
}

// UpdateProduct updates a product. Price changes are recorded in the price
// history log after the product row has been saved, so a failed save leaves
// no orphan history.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	oldCost := product.CostPrice
	oldSelling := product.SellingPrice
	if input.CostPrice != nil {
		product.SetCostPriceFromDecimal(*input.CostPrice)
	}
	if input.SellingPrice != nil {
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if product.SellingPrice != oldSelling {
		if err := s.priceHistory.RecordSellingPriceChange(ctx, product, oldSelling, oldCost, input.PriceChangeReason); err != nil {
			return nil, err
		}
	}
	if product.CostPrice != oldCost {
		if err := s.priceHistory.RecordCostPriceChange(ctx, product, oldCost, oldSelling, input.PriceChangeReason); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
