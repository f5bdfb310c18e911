package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Deal DTOs ---

// CreateDealRequest defines data for creating a deal.
type CreateDealRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Stage       *string         `json:"stage" binding:"omitempty,oneof=lead contact proposal negotiation won lost"`
	CustomerID  string          `json:"customerID" binding:"required,uuid"`
}

// UpdateDealRequest defines the updatable deal fields. Nil fields are left
// unchanged. Stage changes go through the dedicated stage endpoint so the
// state machine side effects always apply.
type UpdateDealRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Value       *decimal.Decimal `json:"value"`
	CustomerID  *string          `json:"customerID" binding:"omitempty,uuid"`
}

// UpdateDealStageRequest defines the payload of the stage transition endpoint.
// Invalid stage strings are rejected here, before the state machine runs.
type UpdateDealStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=lead contact proposal negotiation won lost"`
}

// DealResponse defines data returned for a deal.
type DealResponse struct {
	DealID      string          `json:"dealID"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Stage       string          `json:"stage"`
	CustomerID  string          `json:"customerID"`
	ClosedAt    *time.Time      `json:"closedAt,omitempty"`
	OwnerID     string          `json:"ownerID"`
	TeamID      *string         `json:"teamID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToDealResponse converts domain.Deal to DTO.
func ToDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		DealID:      d.DealID,
		Title:       d.Title,
		Description: d.Description,
		Value:       d.Value,
		Stage:       string(d.Stage),
		CustomerID:  d.CustomerID,
		ClosedAt:    d.ClosedAt,
		OwnerID:     d.OwnerID,
		TeamID:      d.TeamID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.LastUpdatedAt,
	}
}

// ListDealsResponse wraps a list of deals.
type ListDealsResponse struct {
	Deals []DealResponse `json:"deals"`
}

// ToListDealsResponse converts a slice of domain.Deal to DTO.
func ToListDealsResponse(ds []domain.Deal) ListDealsResponse {
	list := make([]DealResponse, len(ds))
	for i, d := range ds {
		list[i] = ToDealResponse(&d)
	}
	return ListDealsResponse{Deals: list}
}

// DealStageStatsResponse is the per-stage slice of the pipeline stats.
type DealStageStatsResponse struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// DealStatsResponse defines the pipeline stats payload.
type DealStatsResponse struct {
	Total      int                               `json:"total"`
	TotalValue decimal.Decimal                   `json:"totalValue"`
	ByStage    map[string]DealStageStatsResponse `json:"byStage"`
	WonValue   decimal.Decimal                   `json:"wonValue"`
	LostValue  decimal.Decimal                   `json:"lostValue"`
}

// ToDealStatsResponse converts domain.DealStats to DTO.
func ToDealStatsResponse(s *domain.DealStats) DealStatsResponse {
	byStage := make(map[string]DealStageStatsResponse, len(s.ByStage))
	for stage, stats := range s.ByStage {
		byStage[string(stage)] = DealStageStatsResponse{Count: stats.Count, Value: stats.Value}
	}
	return DealStatsResponse{
		Total:      s.Total,
		TotalValue: s.TotalValue,
		ByStage:    byStage,
		WonValue:   s.WonValue,
		LostValue:  s.LostValue,
	}
}
