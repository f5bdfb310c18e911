package repositories

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// CustomerReader defines scoped read operations for customer data. Every read
// intersects with the caller's access scope; an id outside the scope reads as
// not found.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer visible under the scope.
	FindCustomerByID(ctx context.Context, customerID string, scope domain.Scope) (*domain.Customer, error)

	// ListCustomers retrieves the customers visible under the scope, newest first.
	ListCustomers(ctx context.Context, scope domain.Scope) ([]domain.Customer, error)

	// CountCustomersByTeam counts a team's customers.
	CountCustomersByTeam(ctx context.Context, teamID string) (int, error)
}

// CustomerWriter defines write operations for customer data.
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates the mutable fields of an existing customer.
	// Ownership columns are never touched.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer.
	DeleteCustomer(ctx context.Context, customerID string) error
}

// CustomerRepositoryFacade combines all customer repository interfaces.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
