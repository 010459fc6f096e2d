package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleManager, ParseRole("manager"))
	assert.Equal(t, RoleConsultant, ParseRole("consultant"))
	assert.Equal(t, RoleViewer, ParseRole("viewer"))

	// Unknown role strings fall back to the least-privileged role
	assert.Equal(t, RoleViewer, ParseRole(""))
	assert.Equal(t, RoleViewer, ParseRole("superadmin"))
	assert.Equal(t, RoleViewer, ParseRole("Admin"))
}

func TestRoleOrdering(t *testing.T) {
	ordered := []Role{RoleViewer, RoleConsultant, RoleManager, RoleAdmin}

	for i, lower := range ordered {
		for j, higher := range ordered {
			got := higher.AtLeast(lower)
			assert.Equal(t, j >= i, got, "%s.AtLeast(%s)", higher, lower)
		}
	}
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleManager.IsAdmin())
	assert.False(t, RoleViewer.IsAdmin())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleConsultant.Valid())
	assert.False(t, Role("root").Valid())
}

func TestHasPermission(t *testing.T) {
	perms := []string{"candidates:read", "candidates:write"}

	assert.True(t, HasPermission(perms, "candidates:read"))
	assert.False(t, HasPermission(perms, "clients:write"))
	assert.False(t, HasPermission(nil, "candidates:read"))

	// Wildcard grants everything
	assert.True(t, HasPermission([]string{"*"}, "anything:at:all"))
}
