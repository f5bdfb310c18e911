package repositories

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// InteractionReader defines scoped read operations for customer interactions.
type InteractionReader interface {
	// FindInteractionByID retrieves an interaction visible under the scope.
	FindInteractionByID(ctx context.Context, interactionID string, scope domain.Scope) (*domain.Interaction, error)

	// ListRecentInteractions retrieves the newest visible interactions,
	// capped at limit.
	ListRecentInteractions(ctx context.Context, scope domain.Scope, limit int) ([]domain.Interaction, error)

	// ListInteractionsByCustomer retrieves a customer's visible interactions,
	// newest first.
	ListInteractionsByCustomer(ctx context.Context, customerID string, scope domain.Scope) ([]domain.Interaction, error)
}

// InteractionWriter defines write operations for customer interactions.
type InteractionWriter interface {
	// SaveInteraction persists a new interaction.
	SaveInteraction(ctx context.Context, interaction domain.Interaction) error

	// DeleteInteraction removes an interaction.
	DeleteInteraction(ctx context.Context, interactionID string) error
}

// InteractionRepositoryFacade combines all interaction repository interfaces.
type InteractionRepositoryFacade interface {
	InteractionReader
	InteractionWriter
}
