package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// scopeClause renders an access scope as a SQL predicate over the aliased
// owner_id/team_id columns. argIdx is the 1-based index of the next query
// placeholder. Unrestricted scopes render TRUE with no args so callers can
// always AND the result in.
func scopeClause(alias string, scope domain.Scope, argIdx int) (string, []any) {
	if scope.Unrestricted {
		return "TRUE", nil
	}
	if scope.TeamID != nil {
		return fmt.Sprintf("%s.team_id = $%d", alias, argIdx), []any{*scope.TeamID}
	}
	return fmt.Sprintf("%s.owner_id = $%d", alias, argIdx), []any{scope.OwnerID}
}
