package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// interactionHandler handles HTTP requests related to customer interactions.
type interactionHandler struct {
	interactionService portssvc.InteractionSvcFacade
}

// registerInteractionRoutes registers routes related to customer interactions.
func registerInteractionRoutes(rg *gin.RouterGroup, interactionService portssvc.InteractionSvcFacade) {
	h := &interactionHandler{interactionService: interactionService}

	interactions := rg.Group("/interactions")
	{
		interactions.GET("", h.listInteractions)
		interactions.POST("", h.createInteraction)
		interactions.DELETE("/:id", h.deleteInteraction)
	}
}

// listInteractions godoc
// @Summary List interactions
// @Description Retrieves visible interactions, newest first; with ?customerID= only that customer's
// @Tags interactions
// @Produce json
// @Param customerID query string false "Filter by customer"
// @Success 200 {object} dto.ListInteractionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /interactions [get]
func (h *interactionHandler) listInteractions(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if customerID := c.Query("customerID"); customerID != "" {
		list, err := h.interactionService.ListInteractionsByCustomer(c.Request.Context(), p, customerID)
		if err != nil {
			respondError(c, err, "Failed to list interactions")
			return
		}
		c.JSON(http.StatusOK, dto.ToListInteractionsResponse(list))
		return
	}

	list, err := h.interactionService.ListRecentInteractions(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list interactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInteractionsResponse(list))
}

// createInteraction godoc
// @Summary Log an interaction
// @Description Logs a call, email, meeting or note against a customer; requires admin or sales role
// @Tags interactions
// @Accept json
// @Produce json
// @Param interaction body dto.CreateInteractionRequest true "Interaction details"
// @Success 201 {object} dto.InteractionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /interactions [post]
func (h *interactionHandler) createInteraction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInteraction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	interaction, err := h.interactionService.CreateInteraction(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to log interaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInteractionResponse(interaction))
}

// deleteInteraction godoc
// @Summary Delete an interaction
// @Description Deletes a visible interaction; requires admin or sales role
// @Tags interactions
// @Produce json
// @Param id path string true "Interaction ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Interaction not found"
// @Security BearerAuth
// @Router /interactions/{id} [delete]
func (h *interactionHandler) deleteInteraction(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.interactionService.DeleteInteraction(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete interaction")
		return
	}
	c.Status(http.StatusNoContent)
}
