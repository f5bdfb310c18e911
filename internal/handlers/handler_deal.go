package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// dealHandler handles HTTP requests related to deals.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

// registerDealRoutes registers routes related to deals.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := &dealHandler{dealService: dealService}

	deals := rg.Group("/deals")
	{
		deals.GET("", h.listDeals)
		deals.GET("/stats", h.getDealStats)
		deals.GET("/:id", h.getDealByID)
		deals.POST("", h.createDeal)
		deals.PUT("/:id", h.updateDeal)
		deals.PUT("/:id/stage", h.updateDealStage)
		deals.DELETE("/:id", h.deleteDeal)
	}
}

// listDeals godoc
// @Summary List deals
// @Description Retrieves the deals visible to the caller, optionally filtered by pipeline stage
// @Tags deals
// @Produce json
// @Param stage query string false "Pipeline stage filter" Enums(lead, contact, proposal, negotiation, won, lost)
// @Success 200 {object} dto.ListDealsResponse
// @Failure 400 {object} map[string]string "Invalid stage"
// @Security BearerAuth
// @Router /deals [get]
func (h *dealHandler) listDeals(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var stage domain.DealStage
	if raw := c.Query("stage"); raw != "" {
		parsed, err := domain.ParseDealStage(raw)
		if err != nil {
			respondError(c, err, "Invalid deal stage")
			return
		}
		stage = parsed
	}

	deals, err := h.dealService.ListDeals(c.Request.Context(), p, stage)
	if err != nil {
		respondError(c, err, "Failed to list deals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDealsResponse(deals))
}

// getDealStats godoc
// @Summary Get pipeline statistics
// @Description Aggregates the visible pipeline: totals and per-stage count/value
// @Tags deals
// @Produce json
// @Success 200 {object} dto.DealStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /deals/stats [get]
func (h *dealHandler) getDealStats(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	stats, err := h.dealService.GetDealStats(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to compute deal stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealStatsResponse(stats))
}

// getDealByID godoc
// @Summary Get a deal
// @Description Retrieves one deal; ids outside the caller's scope read as not found
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} map[string]string "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *dealHandler) getDealByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	deal, err := h.dealService.GetDealByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// createDeal godoc
// @Summary Create a deal
// @Description Creates a deal owned by the caller; requires admin or sales role
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body dto.CreateDealRequest true "Deal details"
// @Success 201 {object} dto.DealResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) createDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDeal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deal, err := h.dealService.CreateDeal(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create deal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// updateDeal godoc
// @Summary Update a deal
// @Description Updates a visible deal's non-stage fields; stage changes go through the stage endpoint
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param deal body dto.UpdateDealRequest true "Fields to update"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *dealHandler) updateDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDeal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deal, err := h.dealService.UpdateDeal(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update deal")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// updateDealStage godoc
// @Summary Move a deal to a new stage
// @Description Runs the pipeline state machine: same stage is a no-op, a real transition keeps closedAt in lockstep and records a stage_changed audit entry
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID"
// @Param stage body dto.UpdateDealStageRequest true "Target stage"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} map[string]string "Invalid stage"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Deal not found"
// @Security BearerAuth
// @Router /deals/{id}/stage [put]
func (h *dealHandler) updateDealStage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDealStage", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	stage, err := domain.ParseDealStage(req.Stage)
	if err != nil {
		respondError(c, err, "Invalid deal stage")
		return
	}

	deal, err := h.dealService.UpdateDealStage(c.Request.Context(), p, c.Param("id"), stage)
	if err != nil {
		respondError(c, err, "Failed to update deal stage")
		return
	}
	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// deleteDeal godoc
// @Summary Delete a deal
// @Description Deletes a visible deal; requires admin or sales role
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *dealHandler) deleteDeal(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.dealService.DeleteDeal(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete deal")
		return
	}
	c.Status(http.StatusNoContent)
}
