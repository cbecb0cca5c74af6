// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"warelog/internal/domain/auth"
	"warelog/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; writes require a manager.
//
// Usage:
//
//	repo := catalog_repo.NewProductRepo(txManager)
//	service := domain.NewCatalogService(...)
//	handler := handlers.NewProductHandler(base, service)
//	RegisterCatalogRoutes(catalogs.Group("/products"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", middleware.RequireRole(auth.RoleManager), handler.Create)
	group.PUT("/:id", middleware.RequireRole(auth.RoleManager), handler.Update)
	group.DELETE("/:id", middleware.RequireRole(auth.RoleManager), handler.Delete)
}
