package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// CompanySvcFacade manages company records under the same scoping and gating
// rules as customers.
type CompanySvcFacade interface {
	// ListCompanies retrieves the companies visible to the principal.
	ListCompanies(ctx context.Context, p domain.Principal) ([]domain.Company, error)

	// GetCompanyByID retrieves one visible company.
	GetCompanyByID(ctx context.Context, p domain.Principal, companyID string) (*domain.Company, error)

	// CreateCompany creates a company. Gate: admin, sales.
	CreateCompany(ctx context.Context, p domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error)

	// UpdateCompany updates a visible company. Gate: admin, sales.
	UpdateCompany(ctx context.Context, p domain.Principal, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error)

	// DeleteCompany deletes a visible company. Gate: admin, sales.
	DeleteCompany(ctx context.Context, p domain.Principal, companyID string) error
}
