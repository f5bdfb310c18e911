package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	principalKey = contextKey("principal")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithPrincipal returns a context carrying the resolved principal.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext retrieves the resolved principal that the auth
// middleware stored on the request. The second return is false when the
// request never passed authentication.
func GetPrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	p, ok := c.Request.Context().Value(principalKey).(domain.Principal)
	return p, ok
}
