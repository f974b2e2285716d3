// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"storekeeper/internal/core/numerator"
	"storekeeper/internal/domain/audit"
	"storekeeper/internal/domain/catalogs/category"
	"storekeeper/internal/domain/catalogs/party"
	"storekeeper/internal/domain/catalogs/product"
	"storekeeper/internal/domain/documents/transaction"
	"storekeeper/internal/domain/posting"
	"storekeeper/internal/domain/registers/stock"
	"storekeeper/internal/domain/reports"
	"storekeeper/internal/infrastructure/http/v1/handlers"
	"storekeeper/internal/infrastructure/http/v1/middleware"
	"storekeeper/internal/infrastructure/storage/postgres"
	"storekeeper/internal/infrastructure/storage/postgres/catalog_repo"
	"storekeeper/internal/infrastructure/storage/postgres/document_repo"
	"storekeeper/internal/infrastructure/storage/postgres/register_repo"
	"storekeeper/internal/infrastructure/storage/postgres/report_repo"
	"storekeeper/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions for repositories
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// TokenValidator verifies bearer tokens issued by the auth service
	TokenValidator middleware.TokenValidator

	// Numerator for document/code number generation
	Numerator numerator.Generator

	// Auditor records document lifecycle changes; may be nil
	Auditor transaction.Auditor

	// Images stores product images; may be nil
	Images product.ImageStore

	// StockThresholds configures stock-health classification
	StockThresholds reports.Thresholds
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1 - all business endpoints require a valid token
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.TokenValidator))
	{
		deps := buildDomain(cfg)

		registerCatalogRoutes(v1, deps)
		registerDocumentRoutes(v1, deps)
		registerRegisterRoutes(v1, deps)
		registerReportRoutes(v1, deps)
	}

	return router
}

// domainDeps holds the wired services shared across route groups.
type domainDeps struct {
	products     *product.Service
	categories   *category.Service
	parties      *party.Service
	transactions *transaction.Service
	stock        *stock.Service
	reports      *reports.Service
}

// buildDomain wires repositories and services once for the router.
func buildDomain(cfg RouterConfig) domainDeps {
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	partyRepo := catalog_repo.NewPartyRepo(cfg.TxManager)

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)
	postingEngine := posting.NewEngine(cfg.TxManager, stockService)

	transactionRepo := document_repo.NewTransactionRepo(cfg.TxManager)
	transactionService := transaction.NewService(
		transactionRepo,
		productRepo,
		partyRepo,
		postingEngine,
		cfg.Numerator,
		cfg.TxManager,
		cfg.Auditor,
	)

	// Stamp audit fields from the session user.
	transactionService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *transaction.Transaction) error {
		audit.EnrichCreatedByDirect(ctx, &doc.CreatedBy, &doc.UpdatedBy)
		return nil
	})
	transactionService.Hooks().OnBeforeUpdate(func(ctx context.Context, doc *transaction.Transaction) error {
		audit.EnrichUpdatedByDirect(ctx, &doc.UpdatedBy)
		return nil
	})

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	return domainDeps{
		products:     product.NewService(productRepo, cfg.TxManager, cfg.Numerator, cfg.Images),
		categories:   category.NewService(categoryRepo, cfg.TxManager, cfg.Numerator),
		parties:      party.NewService(partyRepo, cfg.TxManager, cfg.Numerator),
		transactions: transactionService,
		stock:        stockService,
		reports:      reports.NewService(reportRepo, cfg.StockThresholds),
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps domainDeps) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(
		catalogs.Group("/products"),
		handlers.NewProductHandler(baseHandler, deps.products),
	)
	RegisterCatalogRoutes(
		catalogs.Group("/categories"),
		handlers.NewCategoryHandler(baseHandler, deps.categories),
	)
	RegisterCatalogRoutes(
		catalogs.Group("/parties"),
		handlers.NewPartyHandler(baseHandler, deps.parties),
	)
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps domainDeps) {
	docs := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	handler := handlers.NewTransactionHandler(baseHandler, deps.transactions)

	group := docs.Group("/transactions")
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.GetByID)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, deps domainDeps) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	handler := handlers.NewStockHandler(baseHandler, deps.stock)

	group := registers.Group("/stock")
	group.GET("/balances", handler.GetBalances)
	group.GET("/movements", handler.GetMovements)
	group.GET("/turnovers", handler.GetTurnovers)
	group.GET("/availability/:productId", handler.GetAvailability)
	group.POST("/recalculate", middleware.RequireRole("admin"), handler.Recalculate)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, deps domainDeps) {
	reportsGroup := rg.Group("/reports")
	baseHandler := handlers.NewBaseHandler()

	handler := handlers.NewReportsHandler(baseHandler, deps.reports)

	reportsGroup.GET("/summary", handler.GetSummary)
	reportsGroup.GET("/stock-health", handler.GetStockHealth)
	reportsGroup.GET("/category-stock", handler.GetCategoryStock)
	reportsGroup.GET("/growth", handler.GetGrowth)
}
