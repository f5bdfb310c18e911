package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// recentInteractionsLimit caps the unfiltered interaction feed.
const recentInteractionsLimit = 50

// interactionService implements the InteractionSvcFacade interface
type interactionService struct {
	BaseService
	interactionRepo portsrepo.InteractionRepositoryFacade
	recorder        portssvc.ActivityRecorderSvc
}

// NewInteractionService creates a new interaction service with the provided dependencies
func NewInteractionService(interactionRepo portsrepo.InteractionRepositoryFacade, recorder portssvc.ActivityRecorderSvc) portssvc.InteractionSvcFacade {
	return &interactionService{
		interactionRepo: interactionRepo,
		recorder:        recorder,
	}
}

var _ portssvc.InteractionSvcFacade = (*interactionService)(nil)

// ListRecentInteractions retrieves the newest interactions visible to the principal.
func (s *interactionService) ListRecentInteractions(ctx context.Context, p domain.Principal) ([]domain.Interaction, error) {
	interactions, err := s.interactionRepo.ListRecentInteractions(ctx, domain.ScopeFor(p), recentInteractionsLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list interactions",
			slog.String("user_id", p.UserID))
		return nil, err
	}

	if interactions == nil {
		return []domain.Interaction{}, nil
	}
	return interactions, nil
}

// ListInteractionsByCustomer retrieves a customer's visible interactions.
func (s *interactionService) ListInteractionsByCustomer(ctx context.Context, p domain.Principal, customerID string) ([]domain.Interaction, error) {
	interactions, err := s.interactionRepo.ListInteractionsByCustomer(ctx, customerID, domain.ScopeFor(p))
	if err != nil {
		s.LogError(ctx, err, "Failed to list interactions by customer",
			slog.String("customer_id", customerID))
		return nil, err
	}

	if interactions == nil {
		return []domain.Interaction{}, nil
	}
	return interactions, nil
}

// CreateInteraction logs an interaction owned by the principal.
func (s *interactionService) CreateInteraction(ctx context.Context, p domain.Principal, req dto.CreateInteractionRequest) (*domain.Interaction, error) {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return nil, err
	}

	interactionType, err := domain.ParseInteractionType(req.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	interaction := domain.Interaction{
		InteractionID: uuid.NewString(),
		Type:          interactionType,
		Content:       req.Content,
		CustomerID:    req.CustomerID,
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

	if err := s.interactionRepo.SaveInteraction(ctx, interaction); err != nil {
		s.LogError(ctx, err, "Failed to save interaction",
			slog.String("interaction_id", interaction.InteractionID))
		return nil, err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionCreated,
		EntityType: domain.EntityInteraction,
		EntityID:   interaction.InteractionID,
		EntityName: interaction.DisplayName(),
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Interaction logged successfully",
		slog.String("interaction_id", interaction.InteractionID),
		slog.String("customer_id", interaction.CustomerID))
	return &interaction, nil
}

// DeleteInteraction deletes a visible interaction.
func (s *interactionService) DeleteInteraction(ctx context.Context, p domain.Principal, interactionID string) error {
	if err := domain.RequireRole(p, domain.RoleAdmin, domain.RoleSales); err != nil {
		return err
	}

	interaction, err := s.interactionRepo.FindInteractionByID(ctx, interactionID, domain.ScopeFor(p))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find interaction for deletion",
				slog.String("interaction_id", interactionID))
		}
		return err
	}

	if err := s.interactionRepo.DeleteInteraction(ctx, interactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete interaction",
			slog.String("interaction_id", interactionID))
		return err
	}

	s.recorder.RecordActivity(ctx, domain.ActivityLogEntry{
		Action:     domain.ActionDeleted,
		EntityType: domain.EntityInteraction,
		EntityID:   interaction.InteractionID,
		EntityName: interaction.DisplayName(),
		UserID:     &p.UserID,
	})

	s.LogInfo(ctx, "Interaction deleted successfully",
		slog.String("interaction_id", interactionID),
		slog.String("user_id", p.UserID))
	return nil
}
