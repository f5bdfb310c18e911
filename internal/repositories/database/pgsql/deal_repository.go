package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
)

type PgxDealRepository struct {
	BaseRepository
}

// newPgxDealRepository creates a new repository for deal data.
func newPgxDealRepository(pool *pgxpool.Pool) portsrepo.DealRepositoryFacade {
	return &PgxDealRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DealRepositoryFacade = (*PgxDealRepository)(nil)

var FULL_DEAL_SELECT_QUERY = `
SELECT
	d.deal_id, d.title, d.description, d.value, d.stage, d.customer_id,
	d.closed_at, d.owner_id, d.team_id,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM deals d
`

func (r *PgxDealRepository) getDeals(ctx context.Context, filterQuery string, args ...any) ([]domain.Deal, error) {
	query := FULL_DEAL_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query deals", err)
	}
	defer rows.Close()
	deals, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Deal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Deal{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect deal rows", err)
	}
	return deals, nil
}

func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID string, scope domain.Scope) (*domain.Deal, error) {
	clause, args := scopeClause("d", scope, 2)
	deals, err := r.getDeals(ctx, `WHERE d.deal_id = $1 AND `+clause, append([]any{dealID}, args...)...)
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, apperrors.NewNotFoundError("deal " + dealID + " not found")
	}
	return &deals[0], nil
}

func (r *PgxDealRepository) ListDeals(ctx context.Context, scope domain.Scope, stage domain.DealStage) ([]domain.Deal, error) {
	clause, args := scopeClause("d", scope, 1)
	filter := `WHERE ` + clause
	if stage != "" {
		filter += fmt.Sprintf(` AND d.stage = $%d`, len(args)+1)
		args = append(args, stage)
	}
	return r.getDeals(ctx, filter+` ORDER BY d.created_at DESC`, args...)
}

func (r *PgxDealRepository) ListDealsByTeam(ctx context.Context, teamID string, stage domain.DealStage) ([]domain.Deal, error) {
	filter := `WHERE d.team_id = $1`
	args := []any{teamID}
	if stage != "" {
		filter += ` AND d.stage = $2`
		args = append(args, stage)
	}
	return r.getDeals(ctx, filter+` ORDER BY d.created_at DESC`, args...)
}

func (r *PgxDealRepository) SaveDeal(ctx context.Context, deal domain.Deal) error {
	query := `
		INSERT INTO deals (
			deal_id, title, description, value, stage, customer_id,
			closed_at, owner_id, team_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		deal.DealID,
		deal.Title,
		deal.Description,
		deal.Value,
		deal.Stage,
		deal.CustomerID,
		deal.ClosedAt,
		deal.OwnerID,
		deal.TeamID,
		deal.CreatedAt,
		deal.CreatedBy,
		deal.LastUpdatedAt,
		deal.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("deal " + deal.DealID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("customer does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save deal "+deal.DealID, err)
	}
	return nil
}

func (r *PgxDealRepository) UpdateDeal(ctx context.Context, deal domain.Deal) error {
	query := `
		UPDATE deals
		SET title = $1, description = $2, value = $3, stage = $4, customer_id = $5,
			closed_at = $6, last_updated_at = $7, last_updated_by = $8
		WHERE deal_id = $9;
	`
	result, err := r.Pool.Exec(ctx, query,
		deal.Title,
		deal.Description,
		deal.Value,
		deal.Stage,
		deal.CustomerID,
		deal.ClosedAt,
		deal.LastUpdatedAt,
		deal.LastUpdatedBy,
		deal.DealID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("customer does not exist")
		}
		return apperrors.NewAppError(500, "failed to update deal "+deal.DealID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("deal " + deal.DealID + " not found")
	}
	return nil
}

func (r *PgxDealRepository) DeleteDeal(ctx context.Context, dealID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM deals WHERE deal_id = $1`, dealID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete deal "+dealID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("deal " + dealID + " not found")
	}
	return nil
}
