package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainuser "subhub/internal/domain/user"
	"subhub/internal/infrastructure/identity"
	"subhub/internal/shared/constants"
	"subhub/internal/shared/logger"
	"subhub/internal/shared/utils"
)

// AuthMiddleware verifies identity-provider access tokens locally and loads
// the caller's mirrored account into the request context.
type AuthMiddleware struct {
	verifier *identity.TokenVerifier
	userRepo domainuser.Repository
	logger   logger.Interface
}

func NewAuthMiddleware(verifier *identity.TokenVerifier, userRepo domainuser.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		user, err := m.userRepo.GetBySubjectID(c.Request.Context(), claims.SubjectID)
		if err != nil {
			m.logger.Errorw("failed to load user for token subject", "subject_id", claims.SubjectID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve account")
			c.Abort()
			return
		}
		if user == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "no account for this token")
			c.Abort()
			return
		}
		if !user.IsActive() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is not active")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID())
		c.Set(constants.ContextKeySubjectID, claims.SubjectID)
		c.Set(constants.ContextKeyUserRole, user.EffectiveRole().String())
		c.Set(constants.ContextKeyUser, user)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
