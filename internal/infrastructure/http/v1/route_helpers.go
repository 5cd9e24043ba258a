// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/infrastructure/http/v1/middleware"
)

// EntityRouteHandler defines the interface for catalog entity handlers.
// All entity handlers must implement these methods.
type EntityRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Deactivate(c *gin.Context)
	Restore(c *gin.Context)
}

// RegisterEntityRoutes registers standard CRUD routes for a catalog entity.
// This eliminates the need to manually wire up routes for each entity.
//
// Usage:
//
//	repo := catalog_repo.NewProductRepo(txManager)
//	service := product.NewService(repo, txManager, auditService)
//	handler := handlers.NewProductHandler(baseHandler, service)
//	RegisterEntityRoutes(catalogs.Group("/products"), handler, "catalog:product")
func RegisterEntityRoutes(group *gin.RouterGroup, handler EntityRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Deactivate)
	group.POST("/:id/restore", middleware.RequirePermission(permission+":update"), handler.Restore)
}
