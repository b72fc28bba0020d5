package v1

import (
	"github.com/gin-gonic/gin"

	"pharmapos/internal/core/numerator"
	"pharmapos/internal/domain/catalogs/customer"
	"pharmapos/internal/domain/catalogs/product"
	"pharmapos/internal/domain/catalogs/supplier"
	"pharmapos/internal/domain/documents/purchase_invoice"
	"pharmapos/internal/domain/documents/purchase_return"
	"pharmapos/internal/domain/documents/sale_invoice"
	"pharmapos/internal/domain/documents/sale_return"
	"pharmapos/internal/domain/posting"
	"pharmapos/internal/domain/registers/stock"
	"pharmapos/internal/domain/reports"
	"pharmapos/internal/infrastructure/http/v1/handlers"
	"pharmapos/internal/infrastructure/http/v1/middleware"
	"pharmapos/internal/infrastructure/storage/postgres"
	"pharmapos/internal/infrastructure/storage/postgres/catalog_repo"
	"pharmapos/internal/infrastructure/storage/postgres/document_repo"
	"pharmapos/internal/infrastructure/storage/postgres/register_repo"
	"pharmapos/internal/infrastructure/storage/postgres/report_repo"
	"pharmapos/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages transactions for repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document and catalog code generation
	Numerator numerator.Generator
}

// NewRouter creates and configures the gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	healthHandler.RegisterRoutes(router.Group("/health"))

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerCatalogRoutes(apiV1, cfg)
		registerDocumentRoutes(apiV1, cfg)
		registerRegisterRoutes(apiV1, cfg)
		registerReportRoutes(apiV1, cfg)
		registerCalcRoutes(apiV1)
	}

	return router
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		RegisterCatalogRoutes(group, handler)
		group.GET("/barcode/:barcode", handler.GetByBarcode)
		group.GET("/low-stock", handler.ListLowStock)
	}

	// --- SUPPLIERS ---
	{
		repo := catalog_repo.NewSupplierRepo(cfg.TxManager)
		service := supplier.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSupplierHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/suppliers"), handler)
	}

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler)
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	// Shared posting dependencies
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	postingEngine := posting.NewEngine(stockService, cfg.TxManager)

	// --- PURCHASE INVOICE ---
	{
		repo := document_repo.NewPurchaseInvoiceRepo(cfg.TxManager)
		service := purchase_invoice.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewPurchaseInvoiceHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/purchase-invoice"), handler)
	}

	// --- PURCHASE RETURN ---
	{
		repo := document_repo.NewPurchaseReturnRepo(cfg.TxManager)
		service := purchase_return.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewPurchaseReturnHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/purchase-return"), handler)
	}

	// --- SALE INVOICE ---
	{
		repo := document_repo.NewSaleInvoiceRepo(cfg.TxManager)
		service := sale_invoice.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSaleInvoiceHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/sale-invoice"), handler)
	}

	// --- SALE RETURN ---
	{
		repo := document_repo.NewSaleReturnRepo(cfg.TxManager)
		service := sale_return.NewService(repo, postingEngine, cfg.Numerator, cfg.TxManager)
		handler := handlers.NewSaleReturnHandler(baseHandler, service)
		RegisterDocumentRoutes(docsGroup.Group("/sale-return"), handler)
	}
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	stockHandler := handlers.NewStockHandler(baseHandler, stockService, stockRepo)
	stockHandler.RegisterRoutes(registers.Group("/stock"))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(reportRepo)
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)
	reportHandler.RegisterRoutes(rg.Group("/reports"))
}

// registerCalcRoutes registers the stateless form recalculation endpoints.
func registerCalcRoutes(rg *gin.RouterGroup) {
	baseHandler := handlers.NewBaseHandler()

	calcHandler := handlers.NewCalcHandler(baseHandler)
	calcHandler.RegisterRoutes(rg.Group("/calc"))
}
