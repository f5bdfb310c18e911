package domain

import (
	"strings"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
)

// Role is the closed set of roles a profile can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSales  Role = "sales"
	RoleViewer Role = "viewer"
)

// ParseRole validates a raw role string against the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSales, RoleViewer:
		return Role(s), nil
	default:
		return "", apperrors.NewValidationFailedError("invalid role: " + s)
	}
}

// Permissions is the capability set granted to a role. Authorization decisions
// that are not plain role-set membership go through this table rather than
// ad hoc role comparisons.
type Permissions struct {
	CanCreate      bool
	CanUpdate      bool
	CanDelete      bool
	CanViewAll     bool
	CanManageUsers bool
	CanManageTeam  bool
}

// RolePermissions is the permission matrix for the three roles.
var RolePermissions = map[Role]Permissions{
	RoleAdmin: {
		CanCreate:      true,
		CanUpdate:      true,
		CanDelete:      true,
		CanViewAll:     true,
		CanManageUsers: true,
		CanManageTeam:  true,
	},
	RoleSales: {
		CanCreate: true,
		CanUpdate: true,
		CanDelete: true,
	},
	RoleViewer: {
		CanViewAll: true,
	},
}

// PermissionsFor returns the capability set for a role. Unknown roles get the
// empty (deny-everything) set.
func PermissionsFor(role Role) Permissions {
	return RolePermissions[role]
}

// RequireRole is the role authorization gate: it checks the principal's exact
// role against the set of roles the operation declares. An empty set means the
// operation is open to any authenticated principal. There is no rank ordering;
// admin passes a gate only when the gate names admin.
func RequireRole(p Principal, allowed ...Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, role := range allowed {
		names[i] = string(role)
	}
	return apperrors.NewForbiddenError("requires one of roles: " + strings.Join(names, ", "))
}
