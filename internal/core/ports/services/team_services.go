package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// TeamSvcFacade manages teams and their membership.
type TeamSvcFacade interface {
	// CreateTeam creates a team and promotes the creator to its admin, in one
	// transaction. Open to any authenticated principal.
	CreateTeam(ctx context.Context, p domain.Principal, req dto.CreateTeamRequest) (*domain.Team, error)

	// GetTeamByID retrieves a team.
	GetTeamByID(ctx context.Context, p domain.Principal, teamID string) (*domain.Team, error)

	// GetTeamBySlug retrieves a team by its unique slug.
	GetTeamBySlug(ctx context.Context, p domain.Principal, slug string) (*domain.Team, error)

	// ListTeams retrieves all teams. Admin only.
	ListTeams(ctx context.Context, p domain.Principal) ([]domain.Team, error)

	// UpdateTeam updates team name/description. Admin only.
	UpdateTeam(ctx context.Context, p domain.Principal, teamID string, req dto.UpdateTeamRequest) (*domain.Team, error)

	// DeleteTeam detaches every member (resetting their role) and then deletes
	// the team, as one transaction. Admin only.
	DeleteTeam(ctx context.Context, p domain.Principal, teamID string) error

	// AddMember adds a profile without a team to this team. Admin only.
	AddMember(ctx context.Context, p domain.Principal, teamID, userID string, role domain.Role) (*domain.Profile, error)

	// RemoveMember detaches a member, clearing its team and resetting the role
	// to sales. Admin only.
	RemoveMember(ctx context.Context, p domain.Principal, teamID, userID string) error

	// UpdateMemberRole changes a member's role within the closed enum. Admin only.
	UpdateMemberRole(ctx context.Context, p domain.Principal, teamID, userID string, role domain.Role) (*domain.Profile, error)

	// GetTeamStats aggregates the team's records for dashboards. The
	// independent reads are issued concurrently.
	GetTeamStats(ctx context.Context, p domain.Principal, teamID string) (*domain.TeamStats, error)
}
