package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"subhub/internal/shared/authorization"
	"subhub/internal/shared/constants"
)

func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func currentRole(c *gin.Context) authorization.UserRole {
	return authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
}

func currentSubjectID(c *gin.Context) string {
	return c.GetString(constants.ContextKeySubjectID)
}

// bearerToken extracts the raw access token for pass-through calls to the
// identity provider.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
