package v1

import (
	"github.com/gin-gonic/gin"

	"warelog/internal/domain"
	"warelog/internal/domain/auth"
	"warelog/internal/domain/batch"
	"warelog/internal/domain/catalogs"
	"warelog/internal/domain/movement"
	"warelog/internal/domain/stocklevel"
	"warelog/internal/infrastructure/http/v1/handlers"
	"warelog/internal/infrastructure/http/v1/middleware"
	"warelog/internal/infrastructure/storage/postgres"
	"warelog/pkg/logger"
)

// RouterConfig holds everything the HTTP layer depends on. Services are
// constructed in main and injected here.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	MovementService   *movement.Service
	StockLevelService *stocklevel.Service

	ProductService       *domain.CatalogService[*catalogs.Product]
	CategoryService      *domain.CatalogService[*catalogs.Category]
	WarehouseService     *domain.CatalogService[*catalogs.Warehouse]
	WarehouseTypeService *domain.CatalogService[*catalogs.WarehouseType]
	LocationService      *domain.CatalogService[*catalogs.Location]
	SupplierService      *domain.CatalogService[*catalogs.Supplier]
	EmployeeService      *domain.CatalogService[*catalogs.Employee]
	BatchService         *domain.CatalogService[*batch.Batch]
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

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
		}

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerMovementRoutes(protected, base, cfg)
		registerStockLevelRoutes(protected, base, cfg)
		registerCatalogRoutes(protected, base, cfg)
		registerAccessRoutes(protected, authHandler)
		registerUserRoutes(protected, authHandler)
	}

	return router
}

func registerMovementRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewMovementHandler(base, cfg.MovementService)

	movements := group.Group("/stock-movements")
	{
		movements.GET("", h.List)
		movements.GET("/search", h.Search)
		movements.GET("/lookups", h.Lookups)
		movements.GET("/:id", h.Get)
		movements.POST("", h.Create)
		movements.PATCH("/:id", h.Update)
		movements.DELETE("/:id", middleware.RequireRole(auth.RoleManager), h.Delete)
	}
}

func registerStockLevelRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewStockLevelHandler(base, cfg.StockLevelService)

	levels := group.Group("/stock-levels")
	{
		levels.GET("", h.List)
		levels.GET("/by-key", h.GetByKey)
		levels.GET("/below-reorder", h.BelowReorder)
		levels.GET("/:id", h.Get)
		levels.PUT("/:id/reorder-policy", middleware.RequireRole(auth.RoleManager), h.SetReorderPolicy)
		levels.POST("/:id/stock-take", h.RecordStockTake)
	}
}

func registerCatalogRoutes(group *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	RegisterCatalogRoutes(group.Group("/products"), handlers.NewProductHandler(base, cfg.ProductService))
	RegisterCatalogRoutes(group.Group("/categories"), handlers.NewCategoryHandler(base, cfg.CategoryService))
	RegisterCatalogRoutes(group.Group("/warehouses"), handlers.NewWarehouseHandler(base, cfg.WarehouseService))
	RegisterCatalogRoutes(group.Group("/warehouse-types"), handlers.NewWarehouseTypeHandler(base, cfg.WarehouseTypeService))
	RegisterCatalogRoutes(group.Group("/locations"), handlers.NewLocationHandler(base, cfg.LocationService))
	RegisterCatalogRoutes(group.Group("/suppliers"), handlers.NewSupplierHandler(base, cfg.SupplierService))
	RegisterCatalogRoutes(group.Group("/employees"), handlers.NewEmployeeHandler(base, cfg.EmployeeService))
	RegisterCatalogRoutes(group.Group("/batches"), handlers.NewBatchHandler(base, cfg.BatchService))
}

func registerUserRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	users := group.Group("/users")
	users.Use(middleware.RequireRole(auth.RoleAdmin))
	{
		users.GET("", authHandler.ListUsers)
		users.GET("/:id", authHandler.GetUser)
		users.PATCH("/:id", authHandler.UpdateUser)
		users.DELETE("/:id", authHandler.DeleteUser)
	}
}

func registerAccessRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	access := group.Group("/warehouse-access")
	access.Use(middleware.RequireRole(auth.RoleManager))
	{
		access.POST("", authHandler.GrantAccess)
		access.POST("/:id/revoke", authHandler.RevokeAccess)
		access.GET("/employee/:id", authHandler.ListEmployeeAccess)
	}
}
