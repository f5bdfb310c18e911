package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// DealSvcFacade manages deals and the pipeline state machine.
type DealSvcFacade interface {
	// ListDeals retrieves the deals visible to the principal, optionally
	// narrowed to one stage ("" = all stages).
	ListDeals(ctx context.Context, p domain.Principal, stage domain.DealStage) ([]domain.Deal, error)

	// GetDealByID retrieves one visible deal.
	GetDealByID(ctx context.Context, p domain.Principal, dealID string) (*domain.Deal, error)

	// CreateDeal creates a deal. Gate: admin, sales.
	CreateDeal(ctx context.Context, p domain.Principal, req dto.CreateDealRequest) (*domain.Deal, error)

	// UpdateDeal updates a visible deal's non-stage fields. Gate: admin, sales.
	UpdateDeal(ctx context.Context, p domain.Principal, dealID string, req dto.UpdateDealRequest) (*domain.Deal, error)

	// UpdateDealStage moves a visible deal to a new stage. Writing the current
	// stage again is a no-op. A real transition sets or clears closedAt and
	// records a stage_changed audit entry. Gate: admin, sales.
	UpdateDealStage(ctx context.Context, p domain.Principal, dealID string, stage domain.DealStage) (*domain.Deal, error)

	// DeleteDeal deletes a visible deal. Gate: admin, sales.
	DeleteDeal(ctx context.Context, p domain.Principal, dealID string) error

	// GetDealStats aggregates the visible pipeline.
	GetDealStats(ctx context.Context, p domain.Principal) (*domain.DealStats, error)
}
