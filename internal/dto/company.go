package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a company.
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	OrgNumber string `json:"orgNumber"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Website   string `json:"website" binding:"omitempty,url"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
}

// UpdateCompanyRequest defines the updatable company fields. Nil fields are left unchanged.
type UpdateCompanyRequest struct {
	Name      *string `json:"name"`
	OrgNumber *string `json:"orgNumber"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Website   *string `json:"website" binding:"omitempty,url"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	ZipCode   *string `json:"zipCode"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyID"`
	Name      string    `json:"name"`
	OrgNumber string    `json:"orgNumber,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	OwnerID   string    `json:"ownerID"`
	TeamID    *string   `json:"teamID,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		OrgNumber: c.OrgNumber,
		Email:     c.Email,
		Phone:     c.Phone,
		Website:   c.Website,
		Address:   c.Address,
		City:      c.City,
		ZipCode:   c.ZipCode,
		OwnerID:   c.OwnerID,
		TeamID:    c.TeamID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.LastUpdatedAt,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	list := make([]CompanyResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: list}
}
