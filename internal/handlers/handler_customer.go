package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: customerService}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomerByID)
		customers.POST("", h.createCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves the customers visible to the caller's access scope
// @Tags customers
// @Produce json
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomerByID godoc
// @Summary Get a customer
// @Description Retrieves one customer; ids outside the caller's scope read as not found
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomerByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// createCustomer godoc
// @Summary Create a customer
// @Description Creates a customer owned by the caller; requires admin or sales role
// @Tags customers
// @Accept json
// @Produce json
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Email already exists"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates a visible customer; requires admin or sales role
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Deletes a visible customer; requires admin or sales role
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Customer not found"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
