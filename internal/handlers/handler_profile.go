package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// profileHandler handles HTTP requests related to user profiles.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

// registerProfileRoutes registers routes related to profiles.
func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := &profileHandler{profileService: profileService}

	profiles := rg.Group("/profiles")
	{
		profiles.POST("", h.createProfile)
		profiles.GET("", h.listProfiles)
		profiles.GET("/me", h.getOwnProfile)
		profiles.GET("/:id", h.getProfileByID)
		profiles.PUT("/:id", h.updateProfile)
		profiles.DELETE("/:id", h.deleteProfile)
	}
}

// createProfile godoc
// @Summary Register a profile
// @Description Registers a profile for the verified calling identity; id and email come from the token
// @Tags profiles
// @Accept json
// @Produce json
// @Param profile body dto.CreateProfileRequest true "Profile details"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Profile already exists"
// @Security BearerAuth
// @Router /profiles [post]
func (h *profileHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create profile")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// getOwnProfile godoc
// @Summary Get own profile
// @Tags profiles
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} map[string]string "Profile not registered"
// @Security BearerAuth
// @Router /profiles/me [get]
func (h *profileHandler) getOwnProfile(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), p, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// getProfileByID godoc
// @Summary Get a profile
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} map[string]string "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *profileHandler) getProfileByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// listProfiles godoc
// @Summary List profiles
// @Description Retrieves all profiles; requires user management permission
// @Tags profiles
// @Produce json
// @Success 200 {object} dto.ListProfilesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /profiles [get]
func (h *profileHandler) listProfiles(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list profiles")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProfilesResponse(profiles))
}

// updateProfile godoc
// @Summary Update a profile
// @Description Callers may edit their own name and avatar; role changes require user management permission
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [put]
func (h *profileHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// deleteProfile godoc
// @Summary Delete a profile
// @Description Removes a profile; requires user management permission
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Profile not found"
// @Security BearerAuth
// @Router /profiles/{id} [delete]
func (h *profileHandler) deleteProfile(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete profile")
		return
	}
	c.Status(http.StatusNoContent)
}
