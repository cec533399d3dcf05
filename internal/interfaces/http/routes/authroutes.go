package routes

import (
	"github.com/gin-gonic/gin"

	"subhub/internal/interfaces/http/handlers"
)

// RegisterAuthRoutes wires the auth endpoints. The public group carries the
// rate limiter; profile and password routes require an authenticated caller.
func RegisterAuthRoutes(
	router *gin.RouterGroup,
	handler *handlers.AuthHandler,
	requireAuth gin.HandlerFunc,
	rateLimit gin.HandlerFunc,
) {
	auth := router.Group("/auth")

	public := auth.Group("")
	if rateLimit != nil {
		public.Use(rateLimit)
	}
	public.POST("/signup", handler.SignUp)
	public.POST("/signin", handler.SignIn)
	public.POST("/reset-password", handler.ResetPassword)
	public.POST("/refresh-token", handler.RefreshToken)

	private := auth.Group("")
	private.Use(requireAuth)
	private.POST("/signout", handler.SignOut)
	private.POST("/update-password", handler.UpdatePassword)
	private.GET("/me", handler.GetProfile)
	private.PUT("/me", handler.UpdateProfile)
}
