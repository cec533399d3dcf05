package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subhub/internal/shared/constants"
)

// RequireAdmin aborts the request unless the authenticated user carries the
// admin role. Superusers are mapped to the admin role at authentication time.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(constants.ContextKeyUserRole)
		if !UserRole(userRole).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OwnedResource is any resource that knows its owning user.
type OwnedResource interface {
	GetOwnerID() uint
}

// CanAccessResource reports whether the user may read or mutate the resource.
// Admins may access anything; everyone else only their own resources.
func CanAccessResource(userID uint, userRole UserRole, resource OwnedResource) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resource.GetOwnerID()
}

// CanAccessResourceByOwnerID is CanAccessResource for a bare owner id.
func CanAccessResourceByOwnerID(userID uint, userRole UserRole, resourceOwnerID uint) bool {
	if userRole.IsAdmin() {
		return true
	}
	return userID == resourceOwnerID
}
