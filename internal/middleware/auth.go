package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that resolves the bearer
// credential into a Principal. Every failure, for any reason, ends the request
// with 401: there is no anonymous fallback.
func AuthMiddleware(identitySvc portssvc.IdentitySvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		principal, err := identitySvc.ResolvePrincipal(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Failed to resolve principal", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Store the principal and a user-enriched logger on the request context.
		ctxWithPrincipal := WithPrincipal(c.Request.Context(), *principal)
		enrichedLogger := logger.With(
			slog.String("user_id", principal.UserID),
			slog.String("role", string(principal.Role)),
		)
		c.Request = c.Request.WithContext(context.WithValue(ctxWithPrincipal, loggerCtxKey, enrichedLogger))

		c.Next()
	}
}
