package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// mustPrincipal pulls the resolved principal from the request. Auth middleware
// guarantees it for /api/v1 routes; a miss means a wiring bug, answered 401.
func mustPrincipal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Principal missing from authenticated request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return p, ok
}

// respondError translates service errors into HTTP responses using the
// sentinel taxonomy. Unknown errors become an opaque 500 with the fallback
// message; the real error goes to the log only.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status int
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}

	message := fallback
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	logger.Warn(fallback, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": message})
}
