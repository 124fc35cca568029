package permissions_test

import (
	"testing"

	"storefront/internal/permissions"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	roles := []string{permissions.User, permissions.PermissionUpdate}

	assert.True(t, permissions.HasAny(roles, permissions.User))
	assert.True(t, permissions.HasAny(roles, permissions.Admin, permissions.PermissionUpdate))
	assert.False(t, permissions.HasAny(roles, permissions.Admin))
	assert.False(t, permissions.HasAny(nil, permissions.User))
	assert.False(t, permissions.HasAny(roles))
}

func TestCanModifyItem(t *testing.T) {
	userRoles := []string{permissions.User}
	adminRoles := []string{permissions.User, permissions.Admin}

	// Owner without admin is allowed.
	assert.True(t, permissions.CanModifyItem("u1", userRoles, "u1"))
	// Admin non-owner is allowed.
	assert.True(t, permissions.CanModifyItem("u2", adminRoles, "u1"))
	// Owner who is also admin is allowed.
	assert.True(t, permissions.CanModifyItem("u1", adminRoles, "u1"))
	// Neither owner nor admin is rejected.
	assert.False(t, permissions.CanModifyItem("u2", userRoles, "u1"))
	// Anonymous callers are always rejected.
	assert.False(t, permissions.CanModifyItem("", adminRoles, "u1"))
}

func TestCanUpdatePermissions(t *testing.T) {
	assert.True(t, permissions.CanUpdatePermissions([]string{permissions.Admin}))
	assert.True(t, permissions.CanUpdatePermissions([]string{permissions.PermissionUpdate}))
	assert.False(t, permissions.CanUpdatePermissions([]string{permissions.User}))
	assert.False(t, permissions.CanUpdatePermissions(nil))
}

func TestValid(t *testing.T) {
	assert.True(t, permissions.Valid([]string{permissions.User, permissions.Admin}))
	assert.True(t, permissions.Valid(nil))
	assert.False(t, permissions.Valid([]string{"SUPERUSER"}))
}
