package routes

import (
	"github.com/gin-gonic/gin"

	"subhub/internal/interfaces/http/handlers"
)

func RegisterDashboardRoutes(
	router *gin.RouterGroup,
	handler *handlers.DashboardHandler,
	requireAuth gin.HandlerFunc,
) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(requireAuth)
	dashboard.GET("/stats", handler.GetStats)
}
