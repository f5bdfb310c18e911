package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
)

// profileService implements the ProfileSvcFacade interface
type profileService struct {
	BaseService
	profileRepo portsrepo.ProfileRepositoryFacade
}

// NewProfileService creates a new profile service with the provided dependencies
func NewProfileService(profileRepo portsrepo.ProfileRepositoryFacade) portssvc.ProfileSvcFacade {
	return &profileService{profileRepo: profileRepo}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// CreateProfile registers a profile for the calling identity. The id and email
// come from the verified principal; a caller cannot register on behalf of
// another identity. The role defaults to sales unless an admin sets one.
func (s *profileService) CreateProfile(ctx context.Context, p domain.Principal, req dto.CreateProfileRequest) (*domain.Profile, error) {
	role := domain.RoleSales
	if req.Role != nil && domain.PermissionsFor(p.Role).CanManageUsers {
		parsed, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	email := p.Email
	if email == "" {
		email = req.Email
	}

	now := time.Now()
	profile := domain.Profile{
		ProfileID: p.UserID,
		Email:     email,
		Name:      req.Name,
		Role:      role,
		AvatarURL: req.AvatarURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     p.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: p.UserID,
		},
	}

	if err := s.profileRepo.SaveProfile(ctx, profile); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save profile",
				slog.String("profile_id", profile.ProfileID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Profile created successfully",
		slog.String("profile_id", profile.ProfileID),
		slog.String("role", string(profile.Role)))
	return &profile, nil
}

// GetProfileByID retrieves a profile.
func (s *profileService) GetProfileByID(ctx context.Context, p domain.Principal, profileID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile by ID",
				slog.String("profile_id", profileID))
		}
		return nil, err
	}
	return profile, nil
}

// ListProfiles retrieves all profiles.
func (s *profileService) ListProfiles(ctx context.Context, p domain.Principal) ([]domain.Profile, error) {
	if !domain.PermissionsFor(p.Role).CanManageUsers {
		return nil, apperrors.NewForbiddenError("requires user management permission")
	}

	profiles, err := s.profileRepo.ListProfiles(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list profiles")
		return nil, err
	}

	if profiles == nil {
		return []domain.Profile{}, nil
	}
	return profiles, nil
}

// UpdateProfile updates a profile. Callers may edit their own name and avatar;
// editing other profiles or changing any role requires user management
// permission.
func (s *profileService) UpdateProfile(ctx context.Context, p domain.Principal, profileID string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	canManage := domain.PermissionsFor(p.Role).CanManageUsers
	if profileID != p.UserID && !canManage {
		return nil, apperrors.NewForbiddenError("cannot update another user's profile")
	}
	if req.Role != nil && !canManage {
		return nil, apperrors.NewForbiddenError("requires user management permission")
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, profileID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile for update",
				slog.String("profile_id", profileID))
		}
		return nil, err
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		profile.Role = role
	}
	profile.LastUpdatedAt = time.Now()
	profile.LastUpdatedBy = p.UserID

	if err := s.profileRepo.UpdateProfile(ctx, *profile); err != nil {
		s.LogError(ctx, err, "Failed to update profile",
			slog.String("profile_id", profileID))
		return nil, err
	}

	return profile, nil
}

// DeleteProfile removes a profile.
func (s *profileService) DeleteProfile(ctx context.Context, p domain.Principal, profileID string) error {
	if !domain.PermissionsFor(p.Role).CanManageUsers {
		return apperrors.NewForbiddenError("requires user management permission")
	}
	if profileID == p.UserID {
		return apperrors.NewValidationFailedError("cannot delete your own profile")
	}

	if _, err := s.profileRepo.FindProfileByID(ctx, profileID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find profile for deletion",
				slog.String("profile_id", profileID))
		}
		return err
	}

	if err := s.profileRepo.DeleteProfile(ctx, profileID); err != nil {
		s.LogError(ctx, err, "Failed to delete profile",
			slog.String("profile_id", profileID))
		return err
	}

	s.LogInfo(ctx, "Profile deleted successfully",
		slog.String("profile_id", profileID),
		slog.String("deleted_by", p.UserID))
	return nil
}
