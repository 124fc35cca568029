// Package permissions holds the role constants and the shared
// authorization checks used across services.
package permissions

// Role names stored on a User's permission set.
const (
	User             = "USER"
	Admin            = "ADMIN"
	PermissionUpdate = "PERMISSIONUPDATE"
)

// All lists every role a permission set may contain.
var All = []string{User, Admin, PermissionUpdate}

// HasAny reports whether roles contains at least one of required.
func HasAny(roles []string, required ...string) bool {
	for _, r := range roles {
		for _, want := range required {
			if r == want {
				return true
			}
		}
	}
	return false
}

// CanModifyItem reports whether a caller may update or delete an item:
// the caller owns it, or the caller holds ADMIN.
func CanModifyItem(callerID string, callerRoles []string, ownerID string) bool {
	if callerID == "" {
		return false
	}
	return callerID == ownerID || HasAny(callerRoles, Admin)
}

// CanUpdatePermissions reports whether a caller may replace another
// user's role set.
func CanUpdatePermissions(callerRoles []string) bool {
	return HasAny(callerRoles, Admin, PermissionUpdate)
}

// Valid reports whether every submitted role is a known role name.
func Valid(roles []string) bool {
	for _, r := range roles {
		if !HasAny(All, r) {
			return false
		}
	}
	return true
}
