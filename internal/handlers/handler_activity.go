package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// activityHandler handles HTTP requests over the audit trail.
type activityHandler struct {
	activityService portssvc.ActivityReaderSvc
}

// registerActivityRoutes registers routes related to the activity log.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivityReaderSvc) {
	h := &activityHandler{activityService: activityService}

	activity := rg.Group("/activity-log")
	{
		activity.GET("", h.listRecentActivity)
		activity.GET("/entity/:type/:id", h.listActivityByEntity)
	}
}

// listRecentActivity godoc
// @Summary List recent activity
// @Description Retrieves the newest audit entries the caller may see, scoped by who performed each action
// @Tags activity-log
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} dto.ListActivityLogResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /activity-log [get]
func (h *activityHandler) listRecentActivity(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.activityService.ListRecentActivity(c.Request.Context(), p, limit)
	if err != nil {
		respondError(c, err, "Failed to list activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivityLogResponse(entries))
}

// listActivityByEntity godoc
// @Summary List an entity's history
// @Description Retrieves the full audit history of one entity, including entries for entities that were since deleted
// @Tags activity-log
// @Produce json
// @Param type path string true "Entity type" Enums(customer, company, deal, task)
// @Param id path string true "Entity ID"
// @Success 200 {object} dto.ListActivityLogResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /activity-log/entity/{type}/{id} [get]
func (h *activityHandler) listActivityByEntity(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	entries, err := h.activityService.ListActivityByEntity(c.Request.Context(), p, c.Param("type"), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list entity history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListActivityLogResponse(entries))
}
