package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// CustomerSvcFacade manages customer records. Reads are narrowed by the
// caller's access scope; writes are role gated before any lookup happens.
type CustomerSvcFacade interface {
	// ListCustomers retrieves the customers visible to the principal.
	ListCustomers(ctx context.Context, p domain.Principal) ([]domain.Customer, error)

	// GetCustomerByID retrieves one visible customer; out-of-scope ids read as
	// not found.
	GetCustomerByID(ctx context.Context, p domain.Principal, customerID string) (*domain.Customer, error)

	// CreateCustomer creates a customer stamped with the principal's user and
	// team ids. Gate: admin, sales.
	CreateCustomer(ctx context.Context, p domain.Principal, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// UpdateCustomer updates a visible customer. Gate: admin, sales.
	UpdateCustomer(ctx context.Context, p domain.Principal, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)

	// DeleteCustomer deletes a visible customer. Gate: admin, sales.
	DeleteCustomer(ctx context.Context, p domain.Principal, customerID string) error
}
