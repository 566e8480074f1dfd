package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"registrar/internal/infrastructure/auth"
	"registrar/internal/shared/logger"
	"registrar/internal/shared/utils"
)

const ContextKeyUserUUID = "user_uuid"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, log logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserUUID, claims.UserUUID)
		c.Next()
	}
}

// UserUUID returns the authenticated user's UUID from the request context.
func UserUUID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserUUID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
