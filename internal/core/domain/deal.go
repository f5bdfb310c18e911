package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
)

// DealStage is the pipeline state of a deal.
type DealStage string

const (
	StageLead        DealStage = "lead"
	StageContact     DealStage = "contact"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

// DealStages lists all stages in pipeline order.
var DealStages = []DealStage{StageLead, StageContact, StageProposal, StageNegotiation, StageWon, StageLost}

// ParseDealStage validates a raw stage string before it reaches the state machine.
func ParseDealStage(s string) (DealStage, error) {
	for _, stage := range DealStages {
		if DealStage(s) == stage {
			return stage, nil
		}
	}
	return "", apperrors.NewValidationFailedError("invalid deal stage: " + s)
}

// Closing reports whether the stage closes the deal. won and lost are terminal
// in intent, though no transition graph is enforced.
func (s DealStage) Closing() bool {
	return s == StageWon || s == StageLost
}

// Deal is an opportunity in the sales pipeline.
// Invariant: ClosedAt is non-nil exactly when Stage is won or lost.
type Deal struct {
	DealID      string          `json:"dealID" db:"deal_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Value       decimal.Decimal `json:"value" db:"value"`
	Stage       DealStage       `json:"stage" db:"stage"`
	CustomerID  string          `json:"customerID" db:"customer_id"`
	ClosedAt    *time.Time      `json:"closedAt,omitempty" db:"closed_at"`
	Ownership
	AuditFields
}

// DealStats aggregates the visible pipeline for a dashboard.
type DealStats struct {
	Total      int                          `json:"total"`
	TotalValue decimal.Decimal              `json:"totalValue"`
	ByStage    map[DealStage]DealStageStats `json:"byStage"`
	WonValue   decimal.Decimal              `json:"wonValue"`
	LostValue  decimal.Decimal              `json:"lostValue"`
}

// DealStageStats is the per-stage slice of DealStats.
type DealStageStats struct {
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}
