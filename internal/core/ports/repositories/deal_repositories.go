package repositories

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// DealReader defines scoped read operations for deal data.
type DealReader interface {
	// FindDealByID retrieves a deal visible under the scope.
	FindDealByID(ctx context.Context, dealID string, scope domain.Scope) (*domain.Deal, error)

	// ListDeals retrieves the deals visible under the scope, newest first.
	// stage narrows to a single pipeline stage when non-empty.
	ListDeals(ctx context.Context, scope domain.Scope, stage domain.DealStage) ([]domain.Deal, error)

	// ListDealsByTeam retrieves a team's deals, optionally narrowed by stage.
	ListDealsByTeam(ctx context.Context, teamID string, stage domain.DealStage) ([]domain.Deal, error)
}

// DealWriter defines write operations for deal data.
type DealWriter interface {
	// SaveDeal persists a new deal.
	SaveDeal(ctx context.Context, deal domain.Deal) error

	// UpdateDeal updates the mutable fields of an existing deal, including
	// stage and closedAt. Ownership columns are never touched.
	UpdateDeal(ctx context.Context, deal domain.Deal) error

	// DeleteDeal removes a deal.
	DeleteDeal(ctx context.Context, dealID string) error
}

// DealRepositoryFacade combines all deal repository interfaces.
type DealRepositoryFacade interface {
	DealReader
	DealWriter
}
