package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
)

// PgxActivityLogRepository persists the append-only audit trail. Entries
// reference entities by (entity_type, entity_id) without foreign keys, so
// history outlives the rows it describes.
type PgxActivityLogRepository struct {
	BaseRepository
}

// newPgxActivityLogRepository creates a new repository for audit entries.
func newPgxActivityLogRepository(pool *pgxpool.Pool) portsrepo.ActivityLogRepositoryFacade {
	return &PgxActivityLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ActivityLogRepositoryFacade = (*PgxActivityLogRepository)(nil)

var FULL_ACTIVITY_SELECT_QUERY = `
SELECT
	a.entry_id, a.action, a.entity_type, a.entity_id, a.entity_name,
	a.old_value, a.new_value, a.user_id, a.created_at
FROM activity_log a
`

func (r *PgxActivityLogRepository) getEntries(ctx context.Context, filterQuery string, args ...any) ([]domain.ActivityLogEntry, error) {
	query := FULL_ACTIVITY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query activity log", err)
	}
	defer rows.Close()
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ActivityLogEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.ActivityLogEntry{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect activity log rows", err)
	}
	return entries, nil
}

func (r *PgxActivityLogRepository) SaveEntry(ctx context.Context, entry domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_log (
			entry_id, action, entity_type, entity_id, entity_name,
			old_value, new_value, user_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.EntityName,
		entry.OldValue,
		entry.NewValue,
		entry.UserID,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save activity entry "+entry.EntryID, err)
	}
	return nil
}

// ListRecentEntries scopes by who performed the action, not by the affected
// entity. Team scopes join through profiles; entries with a NULL user_id fall
// out of both restricted branches and stay visible to admins only.
func (r *PgxActivityLogRepository) ListRecentEntries(ctx context.Context, scope domain.Scope, limit int) ([]domain.ActivityLogEntry, error) {
	switch {
	case scope.Unrestricted:
		return r.getEntries(ctx, `ORDER BY a.created_at DESC LIMIT $1`, limit)
	case scope.TeamID != nil:
		filter := `
	JOIN profiles p ON p.profile_id = a.user_id
	WHERE p.team_id = $1
	ORDER BY a.created_at DESC LIMIT $2`
		return r.getEntries(ctx, filter, *scope.TeamID, limit)
	default:
		return r.getEntries(ctx, `WHERE a.user_id = $1 ORDER BY a.created_at DESC LIMIT $2`, scope.OwnerID, limit)
	}
}

func (r *PgxActivityLogRepository) ListEntriesByEntity(ctx context.Context, entityType, entityID string) ([]domain.ActivityLogEntry, error) {
	filter := `WHERE a.entity_type = $1 AND a.entity_id = $2 ORDER BY a.created_at DESC`
	entries, err := r.getEntries(ctx, filter, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing history of %s %s: %w", entityType, entityID, err)
	}
	return entries, nil
}
