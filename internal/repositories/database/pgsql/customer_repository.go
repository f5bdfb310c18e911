package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

var FULL_CUSTOMER_SELECT_QUERY = `
SELECT
	c.customer_id, c.email, c.name, c.phone, c.company_id, c.owner_id, c.team_id,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM customers c
`

func (r *PgxCustomerRepository) getCustomers(ctx context.Context, filterQuery string, args ...any) ([]domain.Customer, error) {
	query := FULL_CUSTOMER_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()
	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Customer{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect customer rows", err)
	}
	return customers, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string, scope domain.Scope) (*domain.Customer, error) {
	clause, args := scopeClause("c", scope, 2)
	customers, err := r.getCustomers(ctx, `WHERE c.customer_id = $1 AND `+clause, append([]any{customerID}, args...)...)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, apperrors.NewNotFoundError("customer " + customerID + " not found")
	}
	return &customers[0], nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, scope domain.Scope) ([]domain.Customer, error) {
	clause, args := scopeClause("c", scope, 1)
	return r.getCustomers(ctx, `WHERE `+clause+` ORDER BY c.created_at DESC`, args...)
}

func (r *PgxCustomerRepository) CountCustomersByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count customers of team "+teamID, err)
	}
	return count, nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (
			customer_id, email, name, phone, company_id, owner_id, team_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Email,
		customer.Name,
		customer.Phone,
		customer.CompanyID,
		customer.OwnerID,
		customer.TeamID,
		customer.CreatedAt,
		customer.CreatedBy,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("customer email " + customer.Email + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("company does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save customer "+customer.CustomerID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET email = $1, name = $2, phone = $3, company_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE customer_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		customer.Email,
		customer.Name,
		customer.Phone,
		customer.CompanyID,
		customer.LastUpdatedAt,
		customer.LastUpdatedBy,
		customer.CustomerID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("customer email " + customer.Email + " already exists")
		}
		return apperrors.NewAppError(500, "failed to update customer "+customer.CustomerID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + customer.CustomerID + " not found")
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete customer "+customerID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + customerID + " not found")
	}
	return nil
}
