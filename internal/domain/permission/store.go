package permission

import "context"

// RoleGrantStore is the narrow read contract over persisted role bindings
// and direct permission grants. Implementations own persistence; the
// resolver only reads. Failures surface as store errors, unchanged.
type RoleGrantStore interface {
	// RolesOf returns the role names bound to the user at the given
	// scope (Global or Organization).
	RolesOf(ctx context.Context, userID string, scope Scope) ([]string, error)

	// DirectPermissionsOf returns the permission kinds granted directly
	// to the user on the given scope (Organization or Program).
	DirectPermissionsOf(ctx context.Context, userID string, scope Scope) (Set, error)
}
