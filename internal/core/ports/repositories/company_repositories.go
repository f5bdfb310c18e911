package repositories

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// CompanyReader defines scoped read operations for company data.
type CompanyReader interface {
	// FindCompanyByID retrieves a company visible under the scope.
	FindCompanyByID(ctx context.Context, companyID string, scope domain.Scope) (*domain.Company, error)

	// ListCompanies retrieves the companies visible under the scope, newest first.
	ListCompanies(ctx context.Context, scope domain.Scope) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data.
type CompanyWriter interface {
	// SaveCompany persists a new company.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates the mutable fields of an existing company.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// DeleteCompany removes a company.
	DeleteCompany(ctx context.Context, companyID string) error
}

// CompanyRepositoryFacade combines all company repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
