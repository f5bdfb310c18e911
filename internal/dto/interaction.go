package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Interaction DTOs ---

// CreateInteractionRequest defines data for logging a customer interaction.
type CreateInteractionRequest struct {
	Type       string `json:"type" binding:"required,oneof=call email meeting note"`
	Content    string `json:"content" binding:"required"`
	CustomerID string `json:"customerID" binding:"required,uuid"`
}

// InteractionResponse defines data returned for an interaction.
type InteractionResponse struct {
	InteractionID string    `json:"interactionID"`
	Type          string    `json:"type"`
	Content       string    `json:"content"`
	CustomerID    string    `json:"customerID"`
	OwnerID       string    `json:"ownerID"`
	TeamID        *string   `json:"teamID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToInteractionResponse converts domain.Interaction to DTO.
func ToInteractionResponse(i *domain.Interaction) InteractionResponse {
	return InteractionResponse{
		InteractionID: i.InteractionID,
		Type:          string(i.Type),
		Content:       i.Content,
		CustomerID:    i.CustomerID,
		OwnerID:       i.OwnerID,
		TeamID:        i.TeamID,
		CreatedAt:     i.CreatedAt,
	}
}

// ListInteractionsResponse wraps a list of interactions.
type ListInteractionsResponse struct {
	Interactions []InteractionResponse `json:"interactions"`
}

// ToListInteractionsResponse converts a slice of domain.Interaction to DTO.
func ToListInteractionsResponse(is []domain.Interaction) ListInteractionsResponse {
	list := make([]InteractionResponse, len(is))
	for i, interaction := range is {
		list[i] = ToInteractionResponse(&interaction)
	}
	return ListInteractionsResponse{Interactions: list}
}
