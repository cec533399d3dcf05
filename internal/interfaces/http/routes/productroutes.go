package routes

import (
	"github.com/gin-gonic/gin"

	"subhub/internal/interfaces/http/handlers"
	"subhub/internal/shared/authorization"
)

// RegisterProductRoutes wires the catalog endpoints. Reads require an
// authenticated caller; mutations are admin only.
func RegisterProductRoutes(
	router *gin.RouterGroup,
	handler *handlers.ProductHandler,
	requireAuth gin.HandlerFunc,
) {
	products := router.Group("/products")
	products.Use(requireAuth)

	products.GET("", handler.List)
	products.GET("/:id", handler.GetByID)
	products.GET("/slug/:slug", handler.GetBySlug)
	products.GET("/:id/pricing", handler.GetPricing)

	admin := products.Group("")
	admin.Use(authorization.RequireAdmin())
	admin.POST("", handler.Create)
	admin.PUT("/:id", handler.Update)
	admin.PATCH("/:id", handler.Update)
	admin.DELETE("/:id", handler.Delete)
	admin.PUT("/:id/pricing", handler.UpdatePricing)
	admin.GET("/:id/subscriptions", handler.GetStats)
}
