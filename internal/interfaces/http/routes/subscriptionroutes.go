package routes

import (
	"github.com/gin-gonic/gin"

	"subhub/internal/interfaces/http/handlers"
	"subhub/internal/shared/authorization"
)

// RegisterSubscriptionRoutes wires the lifecycle endpoints. Ownership checks
// happen inside the handler since they need the stored subscription.
func RegisterSubscriptionRoutes(
	router *gin.RouterGroup,
	handler *handlers.SubscriptionHandler,
	requireAuth gin.HandlerFunc,
) {
	subs := router.Group("/subscriptions")
	subs.Use(requireAuth)

	subs.GET("", handler.List)
	subs.POST("", handler.Create)
	subs.GET("/:id", handler.GetByID)
	subs.GET("/:id/events", handler.GetEvents)
	subs.GET("/:id/with-events", handler.GetWithEvents)
	subs.POST("/:id/change-plan", handler.ChangePlan)
	subs.POST("/:id/cancel", handler.Cancel)
	subs.POST("/:id/reactivate", handler.Reactivate)
	subs.PUT("/:id", handler.Update)
	subs.GET("/user/:user_id", handler.ListByUser)
	subs.GET("/user/:user_id/active", handler.GetActiveByUser)

	admin := subs.Group("")
	admin.Use(authorization.RequireAdmin())
	admin.POST("/dashboard", handler.CreateFromDashboard)
}
