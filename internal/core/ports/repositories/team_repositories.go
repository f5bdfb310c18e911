package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// TeamReader defines read operations for team data.
type TeamReader interface {
	// FindTeamByID retrieves a team by id.
	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)

	// FindTeamBySlug retrieves a team by its unique slug.
	FindTeamBySlug(ctx context.Context, slug string) (*domain.Team, error)

	// ListTeams retrieves all teams, newest first.
	ListTeams(ctx context.Context) ([]domain.Team, error)
}

// TeamWriter defines write operations for team data.
type TeamWriter interface {
	// SaveTeamTx persists a new team inside a caller-managed transaction.
	SaveTeamTx(ctx context.Context, tx pgx.Tx, team domain.Team) error

	// UpdateTeam updates name and description of an existing team.
	UpdateTeam(ctx context.Context, team domain.Team) error

	// DeleteTeamTx removes the team row inside a caller-managed transaction.
	// Members must already be detached.
	DeleteTeamTx(ctx context.Context, tx pgx.Tx, teamID string) error
}

// TeamRepositoryFacade combines all team repository interfaces.
type TeamRepositoryFacade interface {
	TeamReader
	TeamWriter
}

// TeamRepositoryWithTx extends TeamRepositoryFacade with transaction control.
type TeamRepositoryWithTx interface {
	TeamRepositoryFacade
	TransactionManager
}
