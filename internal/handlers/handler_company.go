package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

// registerCompanyRoutes registers routes related to companies.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := &companyHandler{companyService: companyService}

	companies := rg.Group("/companies")
	{
		companies.GET("", h.listCompanies)
		companies.GET("/:id", h.getCompanyByID)
		companies.POST("", h.createCompany)
		companies.PUT("/:id", h.updateCompany)
		companies.DELETE("/:id", h.deleteCompany)
	}
}

// listCompanies godoc
// @Summary List companies
// @Description Retrieves the companies visible to the caller's access scope
// @Tags companies
// @Produce json
// @Success 200 {object} dto.ListCompaniesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /companies [get]
func (h *companyHandler) listCompanies(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCompaniesResponse(companies))
}

// getCompanyByID godoc
// @Summary Get a company
// @Description Retrieves one company; ids outside the caller's scope read as not found
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *companyHandler) getCompanyByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// createCompany godoc
// @Summary Create a company
// @Description Creates a company owned by the caller; requires admin or sales role
// @Tags companies
// @Accept json
// @Produce json
// @Param company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Org number already exists"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// updateCompany godoc
// @Summary Update a company
// @Description Updates a visible company; requires admin or sales role
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// deleteCompany godoc
// @Summary Delete a company
// @Description Deletes a visible company; requires admin or sales role
// @Tags companies
// @Produce json
// @Param id path string true "Company ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Company not found"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *companyHandler) deleteCompany(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.companyService.DeleteCompany(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}
