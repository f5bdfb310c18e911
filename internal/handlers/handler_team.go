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

// teamHandler handles HTTP requests related to teams and their membership.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

// registerTeamRoutes registers routes related to teams.
func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := &teamHandler{teamService: teamService}

	teams := rg.Group("/teams")
	{
		teams.POST("", h.createTeam)
		teams.GET("", h.listTeams)
		teams.GET("/slug/:slug", h.getTeamBySlug)
		teams.GET("/:id", h.getTeamByID)
		teams.GET("/:id/stats", h.getTeamStats)
		teams.PUT("/:id", h.updateTeam)
		teams.DELETE("/:id", h.deleteTeam)
		teams.POST("/:id/members", h.addMember)
		teams.DELETE("/:id/members/:userID", h.removeMember)
		teams.PUT("/:id/members/:userID/role", h.updateMemberRole)
	}
}

// createTeam godoc
// @Summary Create a team
// @Description Creates a team and promotes the caller to its admin in one transaction
// @Tags teams
// @Accept json
// @Produce json
// @Param team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} map[string]string "Invalid input or caller already in a team"
// @Failure 409 {object} map[string]string "Slug already exists"
// @Security BearerAuth
// @Router /teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create team")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// listTeams godoc
// @Summary List all teams
// @Description Retrieves every team; requires admin role
// @Tags teams
// @Produce json
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /teams [get]
func (h *teamHandler) listTeams(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeams(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list teams")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTeamsResponse(teams))
}

// getTeamByID godoc
// @Summary Get a team
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{id} [get]
func (h *teamHandler) getTeamByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve team")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// getTeamBySlug godoc
// @Summary Get a team by slug
// @Tags teams
// @Produce json
// @Param slug path string true "Team slug"
// @Success 200 {object} dto.TeamResponse
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/slug/{slug} [get]
func (h *teamHandler) getTeamBySlug(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeamBySlug(c.Request.Context(), p, c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to retrieve team")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// getTeamStats godoc
// @Summary Get team statistics
// @Description Aggregates one team's members, customers, deals and tasks; requires admin role
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} domain.TeamStats
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{id}/stats [get]
func (h *teamHandler) getTeamStats(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	stats, err := h.teamService.GetTeamStats(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute team stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// updateTeam godoc
// @Summary Update a team
// @Description Updates a team's name and description; requires admin role. The slug is immutable.
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param team body dto.UpdateTeamRequest true "Fields to update"
// @Success 200 {object} dto.TeamResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{id} [put]
func (h *teamHandler) updateTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update team")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// deleteTeam godoc
// @Summary Delete a team
// @Description Detaches every member and deletes the team in one transaction; requires admin role
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (h *teamHandler) deleteTeam(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete team")
		return
	}
	c.Status(http.StatusNoContent)
}

// addMember godoc
// @Summary Add a team member
// @Description Adds a profile without a team to this team; requires admin role
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param member body dto.AddTeamMemberRequest true "Member details"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string "User already in a team"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Team or user not found"
// @Security BearerAuth
// @Router /teams/{id}/members [post]
func (h *teamHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.teamService.AddMember(c.Request.Context(), p, c.Param("id"), req.UserID, domain.Role(req.Role))
	if err != nil {
		respondError(c, err, "Failed to add team member")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// removeMember godoc
// @Summary Remove a team member
// @Description Detaches a member from the team, resetting their role to sales; requires admin role
// @Tags teams
// @Produce json
// @Param id path string true "Team ID"
// @Param userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not a member of this team"
// @Security BearerAuth
// @Router /teams/{id}/members/{userID} [delete]
func (h *teamHandler) removeMember(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), p, c.Param("id"), c.Param("userID")); err != nil {
		respondError(c, err, "Failed to remove team member")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateMemberRole godoc
// @Summary Change a member's role
// @Description Changes a team member's role within the closed enum; requires admin role
// @Tags teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param userID path string true "User ID"
// @Param role body dto.UpdateTeamMemberRoleRequest true "New role"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string "Invalid role"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not a member of this team"
// @Security BearerAuth
// @Router /teams/{id}/members/{userID}/role [put]
func (h *teamHandler) updateMemberRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateTeamMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMemberRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.teamService.UpdateMemberRole(c.Request.Context(), p, c.Param("id"), c.Param("userID"), domain.Role(req.Role))
	if err != nil {
		respondError(c, err, "Failed to update member role")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
