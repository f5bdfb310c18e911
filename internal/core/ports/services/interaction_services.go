package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// InteractionSvcFacade manages logged customer touchpoints (calls, emails,
// meetings, notes). Reads are narrowed by the caller's access scope; writes
// are role gated. Interactions have no update: a wrong entry is deleted and
// re-logged.
type InteractionSvcFacade interface {
	// ListRecentInteractions retrieves the newest interactions visible to the
	// principal, capped at a fixed window.
	ListRecentInteractions(ctx context.Context, p domain.Principal) ([]domain.Interaction, error)

	// ListInteractionsByCustomer retrieves a visible customer's interactions,
	// newest first.
	ListInteractionsByCustomer(ctx context.Context, p domain.Principal, customerID string) ([]domain.Interaction, error)

	// CreateInteraction logs an interaction stamped with the principal's user
	// and team ids. Gate: admin, sales.
	CreateInteraction(ctx context.Context, p domain.Principal, req dto.CreateInteractionRequest) (*domain.Interaction, error)

	// DeleteInteraction deletes a visible interaction. Gate: admin, sales.
	DeleteInteraction(ctx context.Context, p domain.Principal, interactionID string) error
}
