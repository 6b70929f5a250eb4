package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tillpoint/pos-api/internal/application/service"
	"github.com/tillpoint/pos-api/internal/config"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/infrastructure/database"
	"github.com/tillpoint/pos-api/internal/infrastructure/repository"
	"github.com/tillpoint/pos-api/internal/presentation/http/handler"
	"github.com/tillpoint/pos-api/internal/presentation/http/routes"
	"github.com/tillpoint/pos-api/pkg/pdfgen"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	priceHistoryRepo := repository.NewPriceHistoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// PDF engine with all built-in templates
	pdfService := pdfgen.Default()

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, entity.StoreSettings{
		BusinessName:    cfg.Business.Name,
		BusinessAddress: cfg.Business.Address,
		BusinessPhone:   cfg.Business.Phone,
		BusinessEmail:   cfg.Business.Email,
		BusinessWebsite: cfg.Business.Website,
		TaxID:           cfg.Business.TaxID,
		Currency:        cfg.Business.Currency,
		CurrencySymbol:  cfg.Business.CurrencySymbol,
		Locale:          cfg.Business.Locale,
		Timezone:        cfg.Business.Timezone,
		TaxRate:         cfg.Business.TaxRate,
		ReceiptFooter:   cfg.Business.ReceiptFooter,
		InvoiceTerms:    cfg.Business.InvoiceTerms,
	})
	priceHistoryService := service.NewPriceHistoryService(priceHistoryRepo, productRepo, service.TrendConfig{
		MarginThresholdPts: cfg.Trend.MarginThresholdPts,
		CostThresholdPct:   cfg.Trend.CostThresholdPct,
		ErosionWindowDays:  cfg.Trend.ErosionWindowDays,
	})
	productService := service.NewProductService(productRepo, categoryRepo, priceHistoryService)
	categoryService := service.NewCategoryService(categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, settingsRepo)
	documentService := service.NewDocumentService(pdfService, orderRepo, settingsRepo, productRepo, analyticsRepo, cfg.App.BaseURL)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:      handler.NewProductHandler(productService),
		Category:     handler.NewCategoryHandler(categoryService),
		Customer:     handler.NewCustomerHandler(customerService),
		Order:        handler.NewOrderHandler(orderService, documentService),
		Settings:     handler.NewSettingsHandler(settingsService),
		Report:       handler.NewReportHandler(documentService),
		PriceHistory: handler.NewPriceHistoryHandler(priceHistoryService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
