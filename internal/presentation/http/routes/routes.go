package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tillpoint/pos-api/internal/config"
	"github.com/tillpoint/pos-api/internal/presentation/http/handler"
	"github.com/tillpoint/pos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Customer     *handler.CustomerHandler
	Order        *handler.OrderHandler
	Settings     *handler.SettingsHandler
	Report       *handler.ReportHandler
	PriceHistory *handler.PriceHistoryHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Settings
		v1.GET("/settings", h.Settings.Get)
		v1.PUT("/settings", h.Settings.Update)

		registerProductRoutes(v1, h)
		registerCategoryRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerOrderRoutes(v1, h)
		registerReportRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)

		// Price history and trends
		products.GET("/:id/price-history", h.PriceHistory.History)
		products.GET("/:id/margin-trend", h.PriceHistory.MarginTrend)
		products.GET("/:id/cost-trend", h.PriceHistory.CostTrend)
	}
}

func registerCategoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/number/:number", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)

		// PDF documents
		orders.GET("/:id/receipt.pdf", h.Order.Receipt)
		orders.GET("/:id/invoice.pdf", h.Order.Invoice)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily-summary.pdf", h.Report.DailySummary)
		reports.GET("/inventory.pdf", h.Report.Inventory)
		reports.GET("/sales.pdf", h.Report.Sales)

		// Pricing analytics
		reports.GET("/margin-erosion", h.PriceHistory.ErosionAlerts)
		reports.GET("/price-volatility", h.PriceHistory.Volatility)
	}
}
