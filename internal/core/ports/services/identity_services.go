package services

import (
	"context"

	"github.com/solvikcrm/solvik_crm/internal/core/domain"
)

// IdentitySvcFacade is the identity resolver: it turns an opaque bearer
// credential into a resolved Principal.
type IdentitySvcFacade interface {
	// ResolvePrincipal verifies the raw bearer credential with the external
	// identity provider's key material and loads the matching profile. A
	// verified identity without a profile resolves to a minimally privileged
	// viewer principal. Any verification failure returns ErrUnauthorized;
	// there is no anonymous fallback.
	ResolvePrincipal(ctx context.Context, rawToken string) (*domain.Principal, error)
}
