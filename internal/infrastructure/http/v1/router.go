// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/catalogs/customer"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/throttle"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the PostgreSQL connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager coordinates transactions for all repositories
	TxManager *postgres.TxManager

	// Redis backs distributed throttling; nil selects the in-memory throttler
	Redis *redis.Client

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Audit records entity changes
	Audit *postgres.AuditService

	// Throttler limits request rates; nil disables throttling
	Throttler throttle.Throttler

	// ThrottleLimit is the per-client request budget
	ThrottleLimit throttle.Limit

	// LoginBurst caps short request spikes on the public auth endpoints;
	// nil disables burst limiting
	LoginBurst middleware.BurstAllower

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool
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

	// Health endpoints (no auth, no throttling)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Redis)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Throttling applies to the whole API surface, auth included:
		// login endpoints are the usual brute-force target.
		if cfg.Throttler != nil {
			limit := cfg.ThrottleLimit
			if limit.IsZero() {
				limit = throttle.Default()
			}
			v1.Use(middleware.Throttle(cfg.Throttler, limit))
		}

		registerAuthRoutes(v1, cfg)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		if cfg.IdempotencyEnabled {
			store := postgres.NewIdempotencyStoreFromRawPool(cfg.Pool.Pool, cfg.TxManager, 10*time.Minute)
			protected.Use(middleware.Idempotency(store))
		}

		registerCatalogRoutes(protected, cfg)
		registerAuditRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required). Credential endpoints get an
	// extra burst cap on top of the window throttle.
	publicAuth := rg.Group("/auth")
	if cfg.LoginBurst != nil {
		publicAuth.Use(middleware.ThrottleBurst(cfg.LoginBurst))
	}

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog entity endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Audit)
		handler := handlers.NewCustomerHandler(baseHandler, service)

		group := catalogs.Group("/customers")
		RegisterEntityRoutes(group, handler, "catalog:customer")
		group.GET("/by-tax-id/:taxId", middleware.RequirePermission("catalog:customer:read"), handler.FindByTaxID)
		group.GET("/:id/contacts", middleware.RequirePermission("catalog:customer:read"), handler.ListContacts)
		group.POST("/:id/contacts", middleware.RequirePermission("catalog:customer:update"), handler.AddContact)
		group.POST("/:id/contacts/import", middleware.RequirePermission("catalog:customer:update"), handler.ImportContacts)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo(cfg.TxManager)
		service := product.NewService(repo, cfg.TxManager, cfg.Audit)
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		RegisterEntityRoutes(group, handler, "catalog:product")
		group.GET("/by-sku/:sku", middleware.RequirePermission("catalog:product:read"), handler.FindBySKU)
	}
}

// registerAuditRoutes registers audit trail endpoints.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewAuditHandler(baseHandler, cfg.Audit)

	rg.GET("/audit/:entityType/:id", middleware.RequirePermission("audit:read"), handler.History)
}
