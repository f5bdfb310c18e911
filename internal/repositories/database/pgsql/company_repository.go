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

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

var FULL_COMPANY_SELECT_QUERY = `
SELECT
	co.company_id, co.name, co.org_number, co.email, co.phone, co.website,
	co.address, co.city, co.zip_code, co.owner_id, co.team_id,
	co.created_at, co.created_by, co.last_updated_at, co.last_updated_by
FROM companies co
`

func (r *PgxCompanyRepository) getCompanies(ctx context.Context, filterQuery string, args ...any) ([]domain.Company, error) {
	query := FULL_COMPANY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query companies", err)
	}
	defer rows.Close()
	companies, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Company])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Company{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect company rows", err)
	}
	return companies, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string, scope domain.Scope) (*domain.Company, error) {
	clause, args := scopeClause("co", scope, 2)
	companies, err := r.getCompanies(ctx, `WHERE co.company_id = $1 AND `+clause, append([]any{companyID}, args...)...)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return &companies[0], nil
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context, scope domain.Scope) ([]domain.Company, error) {
	clause, args := scopeClause("co", scope, 1)
	return r.getCompanies(ctx, `WHERE `+clause+` ORDER BY co.created_at DESC`, args...)
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	query := `
		INSERT INTO companies (
			company_id, name, org_number, email, phone, website,
			address, city, zip_code, owner_id, team_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		company.CompanyID,
		company.Name,
		company.OrgNumber,
		company.Email,
		company.Phone,
		company.Website,
		company.Address,
		company.City,
		company.ZipCode,
		company.OwnerID,
		company.TeamID,
		company.CreatedAt,
		company.CreatedBy,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("company org number " + company.OrgNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save company "+company.CompanyID, err)
	}
	return nil
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	query := `
		UPDATE companies
		SET name = $1, org_number = $2, email = $3, phone = $4, website = $5,
			address = $6, city = $7, zip_code = $8, last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $11;
	`
	result, err := r.Pool.Exec(ctx, query,
		company.Name,
		company.OrgNumber,
		company.Email,
		company.Phone,
		company.Website,
		company.Address,
		company.City,
		company.ZipCode,
		company.LastUpdatedAt,
		company.LastUpdatedBy,
		company.CompanyID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("company org number " + company.OrgNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to update company "+company.CompanyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + company.CompanyID + " not found")
	}
	return nil
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1`, companyID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete company "+companyID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("company " + companyID + " not found")
	}
	return nil
}
