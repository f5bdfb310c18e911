package dto

import (
	"time"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// --- Profile DTOs ---

// CreateProfileRequest defines data for registering a profile for the calling identity.
type CreateProfileRequest struct {
	Email     string  `json:"email" binding:"omitempty,email"`
	Name      string  `json:"name"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin sales viewer"`
	AvatarURL string  `json:"avatarURL" binding:"omitempty,url"`
}

// UpdateProfileRequest defines the updatable profile fields. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarURL" binding:"omitempty,url"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin sales viewer"`
}

// ProfileResponse defines data returned for a profile.
type ProfileResponse struct {
	ProfileID string    `json:"profileID"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	TeamID    *string   `json:"teamID,omitempty"`
	AvatarURL string    `json:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProfileResponse converts domain.Profile to DTO.
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID: p.ProfileID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      string(p.Role),
		TeamID:    p.TeamID,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

// ListProfilesResponse wraps a list of profiles.
type ListProfilesResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

// ToListProfilesResponse converts a slice of domain.Profile to DTO.
func ToListProfilesResponse(ps []domain.Profile) ListProfilesResponse {
	list := make([]ProfileResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProfileResponse(&p)
	}
	return ListProfilesResponse{Profiles: list}
}
