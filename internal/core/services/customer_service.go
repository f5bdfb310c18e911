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

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	recorder     portssvc.ActivityRecorderSvc
}

// NewCustomerService creates a new customer service with the provided dependencies
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, recorder portssvc.ActivityRecorderSvc) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		recorder:     recorder,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// ListCustomers retrieves the customers visible to the principal.
func (s *customerService) ListCustomers(ctx context.Context, p domain.Principal) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, domain.ScopeFor(p))
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// GetCustomerByID retrieves one customer. Ids outside the principal's scope
// read as not found.
func (s *customerService) GetCustomerByID(ctx context.Context, p domain.Principal, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID",
				slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

// CreateCustomer creates a customer owned by the principal.
func (s *customerService) CreateCustomer(ctx context.Context, p domain.Principal, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Email:      req.Email,
		Name:       req.Name,
		Phone:      req.Phone,
		CompanyID:  req.CompanyID,
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

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer",
			slog.String("customer_id", customer.CustomerID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityCustomer,
		EntityID:   customer.CustomerID,
		EntityName: customer.DisplayName(),
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Customer created successfully",
		slog.String("customer_id", customer.CustomerID),
		slog.String("owner_id", p.UserID))
	return &customer, nil
}

// UpdateCustomer updates a visible customer's mutable fields.
func (s *customerService) UpdateCustomer(ctx context.Context, p domain.Principal, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer for update",
				slog.String("customer_id", customerID))
		}
		return nil, err
	}

	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.CompanyID != nil {
		customer.CompanyID = req.CompanyID
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = p.UserID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer",
			slog.String("customer_id", customerID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionUpdated,
		EntityType: domain.EntityCustomer,
		EntityID:   customer.CustomerID,
		EntityName: customer.DisplayName(),
		UserID:     &p.UserID,
	})

	return customer, nil
}

// DeleteCustomer deletes a visible customer.
func (s *customerService) DeleteCustomer(ctx context.Context, p domain.Principal, customerID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer for deletion",
				slog.String("customer_id", customerID))
		}
		return err
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		s.LogError(ctx, err, "Failed to delete customer",
			slog.String("customer_id", customerID))
		return err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityCustomer,
		EntityID:   customer.CustomerID,
		EntityName: customer.DisplayName(),
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Customer deleted successfully",
		slog.String("customer_id", customerID),
		slog.String("user_id", p.UserID))
	return nil
}
