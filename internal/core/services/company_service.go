package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	recorder    portssvc.ActivityRecorderSvc
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, recorder portssvc.ActivityRecorderSvc) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		recorder:    recorder,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// ListCompanies retrieves the companies visible to the principal.
func (s *companyService) ListCompanies(ctx context.Context, p domain.Principal) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx, domain.ScopeFor(p))
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// GetCompanyByID retrieves one company. Ids outside the principal's scope read
// as not found.
func (s *companyService) GetCompanyByID(ctx context.Context, p domain.Principal, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// CreateCompany creates a company owned by the principal.
func (s *companyService) CreateCompany(ctx context.Context, p domain.Principal, req dto.CreateCompanyRequest) (*domain.Company, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	now := time.Now()
	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		OrgNumber: req.OrgNumber,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
		Address:   req.Address,
		City:      req.City,
		ZipCode:   req.ZipCode,
		Ownership: domain.Ownership{
			OwnerID: p.UserID,
			TeamID:  p.TeamID,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company",
			slog.String("company_id", company.CompanyID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityCompany,
		EntityID:   company.CompanyID,
		EntityName: company.Name,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Company created successfully",
		slog.String("company_id", company.CompanyID),
		slog.String("owner_id", p.UserID))
	return &company, nil
}

// UpdateCompany updates a visible company's mutable fields.
func (s *companyService) UpdateCompany(ctx context.Context, p domain.Principal, companyID string, req dto.UpdateCompanyRequest) (*domain.Company, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company for update",
				slog.String("company_id", companyID))
		}
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.OrgNumber != nil {
		company.OrgNumber = *req.OrgNumber
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.ZipCode != nil {
		company.ZipCode = *req.ZipCode
	}
	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = p.UserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company",
			slog.String("company_id", companyID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionUpdated,
		EntityType: domain.EntityCompany,
		EntityID:   company.CompanyID,
		EntityName: company.Name,
		UserID:     &p.UserID,
	})

	return company, nil
}

// DeleteCompany deletes a visible company.
func (s *companyService) DeleteCompany(ctx context.Context, p domain.Principal, companyID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company for deletion",
				slog.String("company_id", companyID))
		}
		return err
	}

	if err := s.companyRepo.DeleteCompany(ctx, companyID); err != nil {
		s.LogError(ctx, err, "Failed to delete company",
			slog.String("company_id", companyID))
		return err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityCompany,
		EntityID:   company.CompanyID,
		EntityName: company.Name,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Company deleted successfully",
		slog.String("company_id", companyID),
		slog.String("user_id", p.UserID))
	return nil
}
