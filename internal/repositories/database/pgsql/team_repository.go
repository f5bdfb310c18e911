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

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for team data.
func newPgxTeamRepository(pool *pgxpool.Pool) portsrepo.TeamRepositoryWithTx {
	return &PgxTeamRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TeamRepositoryWithTx = (*PgxTeamRepository)(nil)

var FULL_TEAM_SELECT_QUERY = `
SELECT
	t.team_id, t.name, t.slug, t.description,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM teams t
`

func (r *PgxTeamRepository) getTeams(ctx context.Context, filterQuery string, args ...any) ([]domain.Team, error) {
	query := FULL_TEAM_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query teams", err)
	}
	defer rows.Close()
	teams, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Team])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Team{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect team rows", err)
	}
	return teams, nil
}

func (r *PgxTeamRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	teams, err := r.getTeams(ctx, `WHERE t.team_id = $1`, teamID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.NewNotFoundError("team " + teamID + " not found")
	}
	return &teams[0], nil
}

func (r *PgxTeamRepository) FindTeamBySlug(ctx context.Context, slug string) (*domain.Team, error) {
	teams, err := r.getTeams(ctx, `WHERE t.slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, apperrors.NewNotFoundError("team " + slug + " not found")
	}
	return &teams[0], nil
}

func (r *PgxTeamRepository) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return r.getTeams(ctx, `ORDER BY t.created_at DESC`)
}

func (r *PgxTeamRepository) SaveTeamTx(ctx context.Context, tx pgx.Tx, team domain.Team) error {
	query := `
		INSERT INTO teams (
			team_id, name, slug, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		team.TeamID,
		team.Name,
		team.Slug,
		team.Description,
		team.CreatedAt,
		team.CreatedBy,
		team.LastUpdatedAt,
		team.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("team slug " + team.Slug + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save team "+team.TeamID, err)
	}
	return nil
}

func (r *PgxTeamRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	query := `
		UPDATE teams
		SET name = $1, description = $2, last_updated_at = $3, last_updated_by = $4
		WHERE team_id = $5;
	`
	result, err := r.Pool.Exec(ctx, query,
		team.Name,
		team.Description,
		team.LastUpdatedAt,
		team.LastUpdatedBy,
		team.TeamID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update team "+team.TeamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team " + team.TeamID + " not found")
	}
	return nil
}

func (r *PgxTeamRepository) DeleteTeamTx(ctx context.Context, tx pgx.Tx, teamID string) error {
	result, err := tx.Exec(ctx, `DELETE FROM teams WHERE team_id = $1`, teamID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete team "+teamID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("team " + teamID + " not found")
	}
	return nil
}
