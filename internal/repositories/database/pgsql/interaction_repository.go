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

type PgxInteractionRepository struct {
	BaseRepository
}

// newPgxInteractionRepository creates a new repository for customer interactions.
func newPgxInteractionRepository(pool *pgxpool.Pool) portsrepo.InteractionRepositoryFacade {
	return &PgxInteractionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InteractionRepositoryFacade = (*PgxInteractionRepository)(nil)

var FULL_INTERACTION_SELECT_QUERY = `
SELECT
	i.interaction_id, i.type, i.content, i.customer_id, i.owner_id, i.team_id,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM interactions i
`

func (r *PgxInteractionRepository) getInteractions(ctx context.Context, filterQuery string, args ...any) ([]domain.Interaction, error) {
	query := FULL_INTERACTION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query interactions", err)
	}
	defer rows.Close()
	interactions, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Interaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Interaction{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect interaction rows", err)
	}
	return interactions, nil
}

func (r *PgxInteractionRepository) FindInteractionByID(ctx context.Context, interactionID string, scope domain.Scope) (*domain.Interaction, error) {
	clause, args := scopeClause("i", scope, 2)
	interactions, err := r.getInteractions(ctx, `WHERE i.interaction_id = $1 AND `+clause, append([]any{interactionID}, args...)...)
	if err != nil {
		return nil, err
	}
	if len(interactions) == 0 {
		return nil, apperrors.NewNotFoundError("interaction " + interactionID + " not found")
	}
	return &interactions[0], nil
}

func (r *PgxInteractionRepository) ListRecentInteractions(ctx context.Context, scope domain.Scope, limit int) ([]domain.Interaction, error) {
	clause, args := scopeClause("i", scope, 1)
	limitClause := fmt.Sprintf(` ORDER BY i.created_at DESC LIMIT $%d`, len(args)+1)
	return r.getInteractions(ctx, `WHERE `+clause+limitClause, append(args, limit)...)
}

func (r *PgxInteractionRepository) ListInteractionsByCustomer(ctx context.Context, customerID string, scope domain.Scope) ([]domain.Interaction, error) {
	clause, args := scopeClause("i", scope, 2)
	return r.getInteractions(ctx, `WHERE i.customer_id = $1 AND `+clause+` ORDER BY i.created_at DESC`, append([]any{customerID}, args...)...)
}

func (r *PgxInteractionRepository) SaveInteraction(ctx context.Context, interaction domain.Interaction) error {
	query := `
		INSERT INTO interactions (
			interaction_id, type, content, customer_id, owner_id, team_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		interaction.InteractionID,
		interaction.Type,
		interaction.Content,
		interaction.CustomerID,
		interaction.OwnerID,
		interaction.TeamID,
		interaction.CreatedAt,
		interaction.CreatedBy,
		interaction.LastUpdatedAt,
		interaction.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("customer does not exist")
		}
		return apperrors.NewAppError(500, "failed to save interaction "+interaction.InteractionID, err)
	}
	return nil
}

func (r *PgxInteractionRepository) DeleteInteraction(ctx context.Context, interactionID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM interactions WHERE interaction_id = $1`, interactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete interaction "+interactionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("interaction " + interactionID + " not found")
	}
	return nil
}
