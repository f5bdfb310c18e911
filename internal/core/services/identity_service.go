package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	portsrepo "github.com/solvikcrm/solvik_crm/internal/core/ports/repositories"
	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/utils"
)

// identityService implements the IdentitySvcFacade interface
type identityService struct {
	BaseService
	profileRepo portsrepo.ProfileReader
	jwtSecret   string
	jwtIssuer   string
}

// NewIdentityService creates a new identity service with the provided dependencies
func NewIdentityService(profileRepo portsrepo.ProfileReader, jwtSecret string, jwtIssuer string) portssvc.IdentitySvcFacade {
	return &identityService{
		profileRepo: profileRepo,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
	}
}

var _ portssvc.IdentitySvcFacade = (*identityService)(nil)

// ResolvePrincipal verifies the bearer token against the identity provider's
// shared secret and loads the matching profile. A verified token whose subject
// has no profile yet resolves to a viewer principal with no team, so freshly
// signed-up users can read but not mutate until an admin assigns a role.
func (s *identityService) ResolvePrincipal(ctx context.Context, rawToken string) (*domain.Principal, error) {
	claims, err := utils.ParseAndValidateJWT(rawToken, s.jwtSecret, s.jwtIssuer)
	if err != nil {
		s.LogDebug(ctx, "Token verification failed", slog.String("error", err.Error()))
		return nil, apperrors.NewUnauthorizedError("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, apperrors.NewUnauthorizedError("token has no subject")
	}

	profile, err := s.profileRepo.FindProfileByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Verified identity has no profile, resolving as viewer",
				slog.String("user_id", claims.Subject))
			return &domain.Principal{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   domain.RoleViewer,
			}, nil
		}
		s.LogError(ctx, err, "Failed to load profile for verified identity",
			slog.String("user_id", claims.Subject))
		return nil, err
	}

	return &domain.Principal{
		UserID: profile.ProfileID,
		Email:  profile.Email,
		Role:   profile.Role,
		TeamID: profile.TeamID,
	}, nil
}
