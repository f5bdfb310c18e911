package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// ProfileSvcFacade manages persistent identity records.
type ProfileSvcFacade interface {
	// CreateProfile registers a profile for the calling identity. The profile
	// id and email come from the verified principal, not from the request.
	CreateProfile(ctx context.Context, p domain.Principal, req dto.CreateProfileRequest) (*domain.Profile, error)

	// GetProfileByID retrieves a profile.
	GetProfileByID(ctx context.Context, p domain.Principal, profileID string) (*domain.Profile, error)

	// ListProfiles retrieves all profiles. Requires user management capability.
	ListProfiles(ctx context.Context, p domain.Principal) ([]domain.Profile, error)

	// UpdateProfile updates a profile. Callers may update their own profile;
	// updating others (or changing roles) requires user management capability.
	UpdateProfile(ctx context.Context, p domain.Principal, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error)

	// DeleteProfile removes a profile. Requires user management capability.
	DeleteProfile(ctx context.Context, p domain.Principal, profileID string) error
}
