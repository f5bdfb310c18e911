package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Customer DTOs ---

// CreateCustomerRequest defines data for creating a customer.
type CreateCustomerRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	CompanyID *string `json:"companyID" binding:"omitempty,uuid"`
}

// UpdateCustomerRequest defines the updatable customer fields. Nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	CompanyID *string `json:"companyID" binding:"omitempty,uuid"`
}

// CustomerResponse defines data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	CompanyID  *string   `json:"companyID,omitempty"`
	OwnerID    string    `json:"ownerID"`
	TeamID     *string   `json:"teamID,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToCustomerResponse converts domain.Customer to DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Email:      c.Email,
		Name:       c.Name,
		Phone:      c.Phone,
		CompanyID:  c.CompanyID,
		OwnerID:    c.OwnerID,
		TeamID:     c.TeamID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.LastUpdatedAt,
	}
}

// ListCustomersResponse wraps a list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// ToListCustomersResponse converts a slice of domain.Customer to DTO.
func ToListCustomersResponse(cs []domain.Customer) ListCustomersResponse {
	list := make([]CustomerResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCustomerResponse(&c)
	}
	return ListCustomersResponse{Customers: list}
}
