package domain_test

import (
	"testing"

	"github.com/solvikcrm/solvik_crm/internal/apperrors"
	"github.com/solvikcrm/solvik_crm/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "sales", "viewer"} {
		role, err := domain.ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, domain.Role(valid), role)
	}

	for _, invalid := range []string{"", "Admin", "manager", "superuser"} {
		_, err := domain.ParseRole(invalid)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestRequireRole(t *testing.T) {
	admin := domain.Principal{UserID: "u1", Role: domain.RoleAdmin}
	sales := domain.Principal{UserID: "u2", Role: domain.RoleSales}
	viewer := domain.Principal{UserID: "u3", Role: domain.RoleViewer}

	tests := []struct {
		name      string
		principal domain.Principal
		allowed   []domain.Role
		wantErr   bool
	}{
		{
			name:      "empty set allows any authenticated principal",
			principal: viewer,
			allowed:   nil,
			wantErr:   false,
		},
		{
			name:      "member of the set passes",
			principal: sales,
			allowed:   []domain.Role{domain.RoleAdmin, domain.RoleSales},
			wantErr:   false,
		},
		{
			name:      "non-member is rejected",
			principal: viewer,
			allowed:   []domain.Role{domain.RoleAdmin, domain.RoleSales},
			wantErr:   true,
		},
		{
			name:      "no rank ordering: admin fails a gate that names only sales",
			principal: admin,
			allowed:   []domain.Role{domain.RoleSales},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.RequireRole(tt.principal, tt.allowed...)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireRole_ErrorNamesAcceptedRoles(t *testing.T) {
	viewer := domain.Principal{UserID: "u1", Role: domain.RoleViewer}

	err := domain.RequireRole(viewer, domain.RoleAdmin, domain.RoleSales)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "admin")
	assert.Contains(t, err.Error(), "sales")
}

func TestPermissionsFor(t *testing.T) {
	adminPerms := domain.PermissionsFor(domain.RoleAdmin)
	assert.True(t, adminPerms.CanManageUsers)
	assert.True(t, adminPerms.CanManageTeam)
	assert.True(t, adminPerms.CanDelete)

	salesPerms := domain.PermissionsFor(domain.RoleSales)
	assert.True(t, salesPerms.CanCreate)
	assert.False(t, salesPerms.CanManageUsers)

	viewerPerms := domain.PermissionsFor(domain.RoleViewer)
	assert.False(t, viewerPerms.CanCreate)
	assert.False(t, viewerPerms.CanDelete)

	// Unknown roles get the deny-everything set.
	unknown := domain.PermissionsFor(domain.Role("ghost"))
	assert.Equal(t, domain.Permissions{}, unknown)
}
