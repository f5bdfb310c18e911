package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// ProfileReader defines read operations for profile data.
type ProfileReader interface {
	// FindProfileByID retrieves a profile by its id (the identity provider subject).
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)

	// ListProfiles retrieves all profiles, newest first.
	ListProfiles(ctx context.Context) ([]domain.Profile, error)

	// CountTeamMembers counts the profiles belonging to a team.
	CountTeamMembers(ctx context.Context, teamID string) (int, error)
}

// ProfileWriter defines write operations for profile data.
type ProfileWriter interface {
	// SaveProfile persists a new profile.
	SaveProfile(ctx context.Context, profile domain.Profile) error

	// UpdateProfile updates name, avatar and role of an existing profile.
	UpdateProfile(ctx context.Context, profile domain.Profile) error

	// DeleteProfile removes a profile.
	DeleteProfile(ctx context.Context, profileID string) error
}

// ProfileMembershipWriter mutates the team membership columns of a profile.
type ProfileMembershipWriter interface {
	// SetProfileTeam assigns or clears (nil) the profile's team, setting the
	// role in the same statement.
	SetProfileTeam(ctx context.Context, profileID string, teamID *string, role domain.Role, updatedBy string) error

	// SetProfileTeamTx is SetProfileTeam inside a caller-managed transaction.
	SetProfileTeamTx(ctx context.Context, tx pgx.Tx, profileID string, teamID *string, role domain.Role, updatedBy string) error

	// DetachTeamMembersTx clears teamID and resets the role to sales for every
	// member of the team, inside a caller-managed transaction.
	DetachTeamMembersTx(ctx context.Context, tx pgx.Tx, teamID string, updatedBy string) error
}

// ProfileRepositoryFacade combines all profile repository interfaces.
type ProfileRepositoryFacade interface {
	ProfileReader
	ProfileWriter
	ProfileMembershipWriter
}
