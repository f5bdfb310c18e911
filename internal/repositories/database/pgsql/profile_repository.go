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

type PgxProfileRepository struct {
	BaseRepository
}

// newPgxProfileRepository creates a new repository for profile data.
func newPgxProfileRepository(pool *pgxpool.Pool) portsrepo.ProfileRepositoryFacade {
	return &PgxProfileRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProfileRepositoryFacade = (*PgxProfileRepository)(nil)

var FULL_PROFILE_SELECT_QUERY = `
SELECT
	p.profile_id, p.email, p.name, p.role, p.team_id, p.avatar_url,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM profiles p
`

func (r *PgxProfileRepository) getProfiles(ctx context.Context, filterQuery string, args ...any) ([]domain.Profile, error) {
	query := FULL_PROFILE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query profiles", err)
	}
	defer rows.Close()
	profiles, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Profile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Profile{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect profile rows", err)
	}
	return profiles, nil
}

func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	profiles, err := r.getProfiles(ctx, `WHERE p.profile_id = $1`, profileID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperrors.NewNotFoundError("profile " + profileID + " not found")
	}
	return &profiles[0], nil
}

func (r *PgxProfileRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	return r.getProfiles(ctx, `ORDER BY p.created_at DESC`)
}

func (r *PgxProfileRepository) CountTeamMembers(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE team_id = $1`, teamID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count members of team "+teamID, err)
	}
	return count, nil
}

func (r *PgxProfileRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	query := `
		INSERT INTO profiles (
			profile_id, email, name, role, team_id, avatar_url,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		profile.ProfileID,
		profile.Email,
		profile.Name,
		profile.Role,
		profile.TeamID,
		profile.AvatarURL,
		profile.CreatedAt,
		profile.CreatedBy,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("profile " + profile.ProfileID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save profile "+profile.ProfileID, err)
	}
	return nil
}

func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, avatar_url = $2, role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE profile_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		profile.Name,
		profile.AvatarURL,
		profile.Role,
		profile.LastUpdatedAt,
		profile.LastUpdatedBy,
		profile.ProfileID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update profile "+profile.ProfileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile " + profile.ProfileID + " not found")
	}
	return nil
}

func (r *PgxProfileRepository) DeleteProfile(ctx context.Context, profileID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM profiles WHERE profile_id = $1`, profileID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete profile "+profileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile " + profileID + " not found")
	}
	return nil
}

const setProfileTeamQuery = `
	UPDATE profiles
	SET team_id = $1, role = $2, last_updated_at = NOW(), last_updated_by = $3
	WHERE profile_id = $4;
`

func (r *PgxProfileRepository) SetProfileTeam(ctx context.Context, profileID string, teamID *string, role domain.Role, updatedBy string) error {
	result, err := r.Pool.Exec(ctx, setProfileTeamQuery, teamID, role, updatedBy, profileID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set team for profile "+profileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile " + profileID + " not found")
	}
	return nil
}

func (r *PgxProfileRepository) SetProfileTeamTx(ctx context.Context, tx pgx.Tx, profileID string, teamID *string, role domain.Role, updatedBy string) error {
	result, err := tx.Exec(ctx, setProfileTeamQuery, teamID, role, updatedBy, profileID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set team for profile "+profileID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("profile " + profileID + " not found")
	}
	return nil
}

// DetachTeamMembersTx clears the team and resets every member to the sales
// role. Zero affected rows is fine: a team may have no members left.
func (r *PgxProfileRepository) DetachTeamMembersTx(ctx context.Context, tx pgx.Tx, teamID string, updatedBy string) error {
	query := `
		UPDATE profiles
		SET team_id = NULL, role = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE team_id = $3;
	`
	_, err := tx.Exec(ctx, query, domain.RoleSales, updatedBy, teamID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to detach members of team "+teamID, err)
	}
	return nil
}
