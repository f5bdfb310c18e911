package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// dealService implements the DealSvcFacade interface
type dealService struct {
	BaseService
	dealRepo portsrepo.DealRepositoryFacade
	recorder portssvc.ActivityRecorderSvc
}

// NewDealService creates a new deal service with the provided dependencies
func NewDealService(dealRepo portsrepo.DealRepositoryFacade, recorder portssvc.ActivityRecorderSvc) portssvc.DealSvcFacade {
	return &dealService{
		dealRepo: dealRepo,
		recorder: recorder,
	}
}

var _ portssvc.DealSvcFacade = (*dealService)(nil)

// ListDeals retrieves the deals visible to the principal, optionally narrowed
// to one stage.
func (s *dealService) ListDeals(ctx context.Context, p domain.Principal, stage domain.DealStage) ([]domain.Deal, error) {
	deals, err := s.dealRepo.ListDeals(ctx, domain.ScopeFor(p), stage)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deals",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if deals == nil {
		return []domain.Deal{}, nil
	}
	return deals, nil
}

// GetDealByID retrieves one deal. Ids outside the principal's scope read as
// not found.
func (s *dealService) GetDealByID(ctx context.Context, p domain.Principal, dealID string) (*domain.Deal, error) {
	deal, err := s.dealRepo.FindDealByID(ctx, dealID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find deal by ID",
				slog.String("deal_id", dealID))
		}
		return nil, err
	}
	return deal, nil
}

// CreateDeal creates a deal owned by the principal. A missing stage defaults
// to lead; creating directly in won or lost stamps closedAt immediately.
func (s *dealService) CreateDeal(ctx context.Context, p domain.Principal, req dto.CreateDealRequest) (*domain.Deal, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	stage := domain.StageLead
	if req.Stage != nil {
		parsed, err := domain.ParseDealStage(*req.Stage)
		if err != nil {
			return nil, err
		}
		stage = parsed
	}

	now := time.Now()
	deal := domain.Deal{
		DealID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Value:       req.Value,
		Stage:       stage,
		CustomerID:  req.CustomerID,
		Ownership: domain.Ownership{
			OwnerID: p.UserID,
			TeamID:  p.TeamID,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}
	if stage.Closing() {
		deal.ClosedAt = &now
	}

	if err := s.dealRepo.SaveDeal(ctx, deal); err != nil {
		s.LogError(ctx, err, "Failed to save deal",
			slog.String("deal_id", deal.DealID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityDeal,
		EntityID:   deal.DealID,
		EntityName: deal.Title,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Deal created successfully",
		slog.String("deal_id", deal.DealID),
		slog.String("stage", string(deal.Stage)),
		slog.String("owner_id", p.UserID))
	return &deal, nil
}

// UpdateDeal updates a visible deal's non-stage fields. Stage transitions go
// through UpdateDealStage only.
func (s *dealService) UpdateDeal(ctx context.Context, p domain.Principal, dealID string, req dto.UpdateDealRequest) (*domain.Deal, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	deal, err := s.dealRepo.FindDealByID(ctx, dealID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find deal for update",
				slog.String("deal_id", dealID))
		}
		return nil, err
	}

	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Description != nil {
		deal.Description = *req.Description
	}
	if req.Value != nil {
		deal.Value = *req.Value
	}
	if req.CustomerID != nil {
		deal.CustomerID = *req.CustomerID
	}
	deal.LastUpdatedAt = time.Now()
	deal.LastUpdatedBy = p.UserID

	if err := s.dealRepo.UpdateDeal(ctx, *deal); err != nil {
		s.LogError(ctx, err, "Failed to update deal",
			slog.String("deal_id", dealID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionUpdated,
		EntityType: domain.EntityDeal,
		EntityID:   deal.DealID,
		EntityName: deal.Title,
		UserID:     &p.UserID,
	})

	return deal, nil
}

// UpdateDealStage moves a visible deal to a new stage. Any stage may follow
// any other. Writing the current stage again is a no-op that touches nothing
// and records nothing. A real transition keeps closedAt in lockstep with the
// stage: set on entering won or lost, cleared on leaving, and refreshed when
// flipping directly between the two closed stages.
func (s *dealService) UpdateDealStage(ctx context.Context, p domain.Principal, dealID string, stage domain.DealStage) (*domain.Deal, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	deal, err := s.dealRepo.FindDealByID(ctx, dealID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find deal for stage change",
				slog.String("deal_id", dealID))
		}
		return nil, err
	}

	if deal.Stage == stage {
		return deal, nil
	}

	now := time.Now()
	oldStage := string(deal.Stage)
	deal.Stage = stage
	if stage.Closing() {
		deal.ClosedAt = &now
	} else {
		deal.ClosedAt = nil
	}
	deal.LastUpdatedAt = now
	deal.LastUpdatedBy = p.UserID

	if err := s.dealRepo.UpdateDeal(ctx, *deal); err != nil {
		s.LogError(ctx, err, "Failed to persist deal stage change",
			slog.String("deal_id", dealID),
			slog.String("stage", string(stage)))
		return nil, err
	}

	newStage := string(stage)
	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionStageChanged,
		EntityType: domain.EntityDeal,
		EntityID:   deal.DealID,
		EntityName: deal.Title,
		OldValue:   &oldStage,
		NewValue:   &newStage,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Deal stage changed",
		slog.String("deal_id", deal.DealID),
		slog.String("old_stage", oldStage),
		slog.String("new_stage", newStage))
	return deal, nil
}

// DeleteDeal deletes a visible deal.
func (s *dealService) DeleteDeal(ctx context.Context, p domain.Principal, dealID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	deal, err := s.dealRepo.FindDealByID(ctx, dealID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find deal for deletion",
				slog.String("deal_id", dealID))
		}
		return err
	}

	if err := s.dealRepo.DeleteDeal(ctx, dealID); err != nil {
		s.LogError(ctx, err, "Failed to delete deal",
			slog.String("deal_id", dealID))
		return err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityDeal,
		EntityID:   deal.DealID,
		EntityName: deal.Title,
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Deal deleted successfully",
		slog.String("deal_id", dealID),
		slog.String("user_id", p.UserID))
	return nil
}

// GetDealStats aggregates the visible pipeline in memory. Pipelines are small
// enough per scope that pushing the aggregation into SQL buys nothing yet.
func (s *dealService) GetDealStats(ctx context.Context, p domain.Principal) (*domain.DealStats, error) {
	deals, err := s.dealRepo.ListDeals(ctx, domain.ScopeFor(p), "")
	if err != nil {
		s.LogError(ctx, err, "Failed to list deals for stats",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	stats := &domain.DealStats{
		ByStage:    make(map[domain.DealStage]domain.DealStageStats, len(domain.DealStages)),
		TotalValue: decimal.Zero,
		WonValue:   decimal.Zero,
		LostValue:  decimal.Zero,
	}
	for _, stage := range domain.DealStages {
		stats.ByStage[stage] = domain.DealStageStats{Value: decimal.Zero}
	}

	for _, deal := range deals {
		stats.Total++
		stats.TotalValue = stats.TotalValue.Add(deal.Value)

		stageStats := stats.ByStage[deal.Stage]
		stageStats.Count++
		stageStats.Value = stageStats.Value.Add(deal.Value)
		stats.ByStage[deal.Stage] = stageStats

		switch deal.Stage {
		case domain.StageWon:
			stats.WonValue = stats.WonValue.Add(deal.Value)
		case domain.StageLost:
			stats.LostValue = stats.LostValue.Add(deal.Value)
		}
	}

	return stats, nil
}
