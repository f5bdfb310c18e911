package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Team DTOs ---

// CreateTeamRequest defines data for creating a team. The slug format is
// enforced by the custom teamslug validator (lowercase letters, digits, hyphen).
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Slug        string `json:"slug" binding:"required,min=2,teamslug"`
	Description string `json:"description"`
}

// UpdateTeamRequest defines the updatable team fields. The slug is immutable.
type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2"`
	Description *string `json:"description"`
}

// AddTeamMemberRequest defines data for adding a member to a team.
type AddTeamMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=admin sales viewer"`
}

// UpdateTeamMemberRoleRequest defines data for changing a member's role.
type UpdateTeamMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin sales viewer"`
}

// TeamResponse defines data returned for a team.
type TeamResponse struct {
	TeamID      string    `json:"teamID"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTeamResponse converts domain.Team to DTO.
func ToTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		TeamID:      t.TeamID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// ListTeamsResponse wraps a list of teams.
type ListTeamsResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// ToListTeamsResponse converts a slice of domain.Team to DTO.
func ToListTeamsResponse(ts []domain.Team) ListTeamsResponse {
	list := make([]TeamResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTeamResponse(&t)
	}
	return ListTeamsResponse{Teams: list}
}
