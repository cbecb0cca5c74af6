// Package main is the entry point for the warelog API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warelog/internal/core/apperror"
	"warelog/internal/domain"
	"warelog/internal/domain/auth"
	"warelog/internal/domain/batch"
	"warelog/internal/domain/catalogs"
	"warelog/internal/domain/movement"
	"warelog/internal/domain/stocklevel"
	v1 "warelog/internal/infrastructure/http/v1"
	"warelog/internal/infrastructure/storage/postgres"
	"warelog/internal/infrastructure/storage/postgres/auth_repo"
	"warelog/internal/infrastructure/storage/postgres/catalog_repo"
	"warelog/internal/infrastructure/storage/postgres/stock_repo"
	"warelog/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting warelog server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	poolCfg := postgres.DefaultPoolConfig(dsn)
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	warehouseTypeRepo := catalog_repo.NewWarehouseTypeRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	employeeRepo := catalog_repo.NewEmployeeRepo(txManager)

	batchRepo := stock_repo.NewBatchRepo(txManager)
	stockLevelRepo := stock_repo.NewStockLevelRepo(txManager)
	movementRepo := stock_repo.NewMovementRepo(txManager)

	userRepo := auth_repo.NewUserRepo(txManager)
	accessRepo := auth_repo.NewWarehouseAccessRepo(txManager)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(userRepo, accessRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Movement engine ---
	reconciler := stocklevel.NewReconciler(stockLevelRepo)
	tracker := batch.NewTracker(batchRepo)
	refs := movement.References{
		Products:   productRepo,
		Batches:    batchRepo,
		Warehouses: warehouseRepo,
		Employees:  employeeRepo,
		Suppliers:  supplierRepo,
	}
	movementService := movement.NewService(movementRepo, refs, reconciler, tracker, txManager, auditService)

	stockLevelService := stocklevel.NewService(stockLevelRepo, txManager)

	batchService := domain.NewCatalogService(domain.CatalogServiceConfig[*batch.Batch]{
		Repo: batchRepo, TxManager: txManager, EntityName: "batch",
	})
	// A batch with stock still attributed to it cannot be removed.
	batchService.Hooks().On(domain.BeforeDelete, func(ctx context.Context, b *batch.Batch) error {
		if !b.Quantity.IsZero() {
			return apperror.NewBusinessRule(apperror.CodeBusinessRule, "batch still has remaining quantity").
				WithDetail("batch_id", b.ID).
				WithDetail("quantity", b.Quantity.String())
		}
		return nil
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      jwtService,
		AuthService:       authService,
		MovementService:   movementService,
		StockLevelService: stockLevelService,

		ProductService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Product]{
			Repo: productRepo, TxManager: txManager, EntityName: "product",
		}),
		CategoryService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Category]{
			Repo: categoryRepo, TxManager: txManager, EntityName: "category",
		}),
		WarehouseService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Warehouse]{
			Repo: warehouseRepo, TxManager: txManager, EntityName: "warehouse",
		}),
		WarehouseTypeService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.WarehouseType]{
			Repo: warehouseTypeRepo, TxManager: txManager, EntityName: "warehouse type",
		}),
		LocationService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Location]{
			Repo: locationRepo, TxManager: txManager, EntityName: "location",
		}),
		SupplierService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Supplier]{
			Repo: supplierRepo, TxManager: txManager, EntityName: "supplier",
		}),
		EmployeeService: domain.NewCatalogService(domain.CatalogServiceConfig[*catalogs.Employee]{
			Repo: employeeRepo, TxManager: txManager, EntityName: "employee",
		}),
		BatchService: batchService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
