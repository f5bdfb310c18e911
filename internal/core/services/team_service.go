package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// teamService implements the TeamSvcFacade interface
type teamService struct {
	BaseService
	teamRepo     portsrepo.TeamRepositoryWithTx
	profileRepo  portsrepo.ProfileRepositoryFacade
	customerRepo portsrepo.CustomerReader
	dealRepo     portsrepo.DealReader
	taskRepo     portsrepo.TaskReader
}

// NewTeamService creates a new team service with the provided dependencies
func NewTeamService(
	teamRepo portsrepo.TeamRepositoryWithTx,
	profileRepo portsrepo.ProfileRepositoryFacade,
	customerRepo portsrepo.CustomerReader,
	dealRepo portsrepo.DealReader,
	taskRepo portsrepo.TaskReader,
) portssvc.TeamSvcFacade {
	return &teamService{
		teamRepo:     teamRepo,
		profileRepo:  profileRepo,
		customerRepo: customerRepo,
		dealRepo:     dealRepo,
		taskRepo:     taskRepo,
	}
}

var _ portssvc.TeamSvcFacade = (*teamService)(nil)

// CreateTeam creates a team and promotes the creator to its admin. Both writes
// run in one transaction so a failed promotion never leaves an ownerless team.
func (s *teamService) CreateTeam(ctx context.Context, p domain.Principal, req dto.CreateTeamRequest) (*domain.Team, error) {
	if p.TeamID != nil {
		return nil, apperrors.NewValidationFailedError("user already belongs to a team")
	}

	now := time.Now()
	team := domain.Team{
		TeamID:      uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	tx, err := s.teamRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for team creation")
		return nil, err
	}
	defer s.teamRepo.Rollback(ctx, tx)

	if err := s.teamRepo.SaveTeamTx(ctx, tx, team); err != nil {
		s.LogError(ctx, err, "Failed to save team",
			slog.String("team_slug", team.Slug))
		return nil, err
	}

	if err := s.profileRepo.SetProfileTeamTx(ctx, tx, p.UserID, &team.TeamID, domain.RoleAdmin, p.UserID); err != nil {
		s.LogError(ctx, err, "Failed to promote team creator to admin",
			slog.String("team_id", team.TeamID),
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if err := s.teamRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit team creation",
			slog.String("team_id", team.TeamID))
		return nil, err
	}

	s.LogInfo(ctx, "Team created successfully",
		slog.String("team_id", team.TeamID),
		slog.String("team_slug", team.Slug),
		slog.String("creator_id", p.UserID))
	return &team, nil
}

// GetTeamByID retrieves a team.
func (s *teamService) GetTeamByID(ctx context.Context, p domain.Principal, teamID string) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find team by ID",
				slog.String("team_id", teamID))
		}
		return nil, err
	}
	return team, nil
}

// GetTeamBySlug retrieves a team by its unique slug.
func (s *teamService) GetTeamBySlug(ctx context.Context, p domain.Principal, slug string) (*domain.Team, error) {
	team, err := s.teamRepo.FindTeamBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find team by slug",
				slog.String("team_slug", slug))
		}
		return nil, err
	}
	return team, nil
}

// ListTeams retrieves all teams.
func (s *teamService) ListTeams(ctx context.Context, p domain.Principal) ([]domain.Team, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListTeams(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teams")
		return nil, err
	}

	if teams == nil {
		return []domain.Team{}, nil
	}
	return teams, nil
}

// UpdateTeam updates a team's name and description. The slug is immutable.
func (s *teamService) UpdateTeam(ctx context.Context, p domain.Principal, teamID string, req dto.UpdateTeamRequest) (*domain.Team, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find team for update",
				slog.String("team_id", teamID))
		}
		return nil, err
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	team.LastUpdatedAt = time.Now()
	team.LastUpdatedBy = p.UserID

	if err := s.teamRepo.UpdateTeam(ctx, *team); err != nil {
		s.LogError(ctx, err, "Failed to update team",
			slog.String("team_id", teamID))
		return nil, err
	}

	return team, nil
}

// DeleteTeam detaches every member and then deletes the team row, in one
// transaction. Detached members keep their profiles but drop back to the sales
// role with no team.
func (s *teamService) DeleteTeam(ctx context.Context, p domain.Principal, teamID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.teamRepo.FindTeamByID(ctx, teamID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find team for deletion",
				slog.String("team_id", teamID))
		}
		return err
	}

	tx, err := s.teamRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction for team deletion")
		return err
	}
	defer s.teamRepo.Rollback(ctx, tx)

	if err := s.profileRepo.DetachTeamMembersTx(ctx, tx, teamID, p.UserID); err != nil {
		s.LogError(ctx, err, "Failed to detach team members",
			slog.String("team_id", teamID))
		return err
	}

	if err := s.teamRepo.DeleteTeamTx(ctx, tx, teamID); err != nil {
		s.LogError(ctx, err, "Failed to delete team",
			slog.String("team_id", teamID))
		return err
	}

	if err := s.teamRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit team deletion",
			slog.String("team_id", teamID))
		return err
	}

	s.LogInfo(ctx, "Team deleted successfully",
		slog.String("team_id", teamID),
		slog.String("user_id", p.UserID))
	return nil
}

// AddMember adds a profile to the team. Profiles already in a team must be
// removed from it first.
func (s *teamService) AddMember(ctx context.Context, p domain.Principal, teamID, userID string, role domain.Role) (*domain.Profile, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleSales
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.FindTeamByID(ctx, teamID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile for team membership",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	if profile.TeamID != nil {
		return nil, apperrors.NewValidationFailedError("user already belongs to a team")
	}

	if err := s.profileRepo.SetProfileTeam(ctx, userID, &teamID, role, p.UserID); err != nil {
		s.LogError(ctx, err, "Failed to add member to team",
			slog.String("team_id", teamID),
			slog.String("user_id", userID))
		return nil, err
	}

	profile.TeamID = &teamID
	profile.Role = role
	s.LogInfo(ctx, "Member added to team",
		slog.String("team_id", teamID),
		slog.String("user_id", userID),
		slog.String("role", string(role)))
	return profile, nil
}

// RemoveMember detaches a member from the team and resets its role to sales.
func (s *teamService) RemoveMember(ctx context.Context, p domain.Principal, teamID, userID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile for removal",
				slog.String("user_id", userID))
		}
		return err
	}
	if profile.TeamID == nil || *profile.TeamID != teamID {
		return apperrors.NewNotFoundError("user is not a member of this team")
	}

	if err := s.profileRepo.SetProfileTeam(ctx, userID, nil, domain.RoleSales, p.UserID); err != nil {
		s.LogError(ctx, err, "Failed to remove member from team",
			slog.String("team_id", teamID),
			slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Member removed from team",
		slog.String("team_id", teamID),
		slog.String("user_id", userID))
	return nil
}

// UpdateMemberRole changes a member's role within the closed enum.
func (s *teamService) UpdateMemberRole(ctx context.Context, p domain.Principal, teamID, userID string, role domain.Role) (*domain.Profile, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile for role change",
				slog.String("user_id", userID))
		}
		return nil, err
	}
	if profile.TeamID == nil || *profile.TeamID != teamID {
		return nil, apperrors.NewNotFoundError("user is not a member of this team")
	}

	if err := s.profileRepo.SetProfileTeam(ctx, userID, profile.TeamID, role, p.UserID); err != nil {
		s.LogError(ctx, err, "Failed to update member role",
			slog.String("team_id", teamID),
			slog.String("user_id", userID),
			slog.String("role", string(role)))
		return nil, err
	}

	profile.Role = role
	s.LogInfo(ctx, "Member role updated",
		slog.String("team_id", teamID),
		slog.String("user_id", userID),
		slog.String("role", string(role)))
	return profile, nil
}

// GetTeamStats aggregates one team's records. The four independent reads run
// concurrently; the first failure cancels the rest.
func (s *teamService) GetTeamStats(ctx context.Context, p domain.Principal, teamID string) (*domain.TeamStats, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find team for stats",
				slog.String("team_id", teamID))
		}
		return nil, err
	}

	var (
		memberCount   int
		customerCount int
		deals         []domain.Deal
		tasks         []domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		memberCount, err = s.profileRepo.CountTeamMembers(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		customerCount, err = s.customerRepo.CountCustomersByTeam(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		deals, err = s.dealRepo.ListDealsByTeam(gctx, teamID, "")
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepo.ListTasksByTeam(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to aggregate team stats",
			slog.String("team_id", teamID))
		return nil, err
	}

	totalValue := decimal.Zero
	wonValue := decimal.Zero
	wonCount := 0
	closedCount := 0
	for _, deal := range deals {
		totalValue = totalValue.Add(deal.Value)
		switch deal.Stage {
		case domain.StageWon:
			wonValue = wonValue.Add(deal.Value)
			wonCount++
			closedCount++
		case domain.StageLost:
			closedCount++
		}
	}

	completedTasks := 0
	for _, task := range tasks {
		if task.Completed {
			completedTasks++
		}
	}

	winRate := 0
	if closedCount > 0 {
		winRate = wonCount * 100 / closedCount
	}

	return &domain.TeamStats{
		TeamID:         team.TeamID,
		Name:           team.Name,
		MemberCount:    memberCount,
		CustomerCount:  customerCount,
		DealCount:      len(deals),
		TotalDealValue: totalValue.String(),
		WonDealValue:   wonValue.String(),
		TaskCount:      len(tasks),
		CompletedTasks: completedTasks,
		WinRatePercent: winRate,
	}, nil
}
