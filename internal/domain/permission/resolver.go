package permission

import (
	"context"
	"fmt"

	apperrors "registrar/internal/shared/errors"
)

// Resolver computes the union of a user's granted permission kinds at a
// scope. It holds no state of its own; both inputs are injected and the
// resolver may be shared freely between goroutines.
//
// Composition is additive and monotonic: organization scope never revokes
// a global grant, it only widens the set.
type Resolver struct {
	catalog *Catalog
	store   RoleGrantStore
}

func NewResolver(catalog *Catalog, store RoleGrantStore) *Resolver {
	return &Resolver{
		catalog: catalog,
		store:   store,
	}
}

// Resolve returns the permission kinds the user holds at the given scope.
// Global scope yields only globally granted kinds; organization scope
// additionally unions organization role bindings and direct organization
// grants. Program scope is not a resolution scope here; program-direct
// grants are layered on by the access service.
func (r *Resolver) Resolve(ctx context.Context, userID string, scope Scope) (Set, error) {
	if scope.Kind() == ScopeProgram {
		return nil, apperrors.NewInternalError(
			"permission resolution is scoped to global or organization", scope.String())
	}

	result := NewSet()

	if err := r.unionRoleGrants(ctx, userID, GlobalScope(), result); err != nil {
		return nil, err
	}

	if scope.Kind() == ScopeOrganization {
		if err := r.unionRoleGrants(ctx, userID, scope, result); err != nil {
			return nil, err
		}

		direct, err := r.store.DirectPermissionsOf(ctx, userID, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to read direct grants at %s: %w", scope, err)
		}
		result.Union(direct)
	}

	return result, nil
}

func (r *Resolver) unionRoleGrants(ctx context.Context, userID string, scope Scope, into Set) error {
	roles, err := r.store.RolesOf(ctx, userID, scope)
	if err != nil {
		return fmt.Errorf("failed to read role bindings at %s: %w", scope, err)
	}
	for _, role := range roles {
		grants, err := r.catalog.RoleGrants(role)
		if err != nil {
			return err
		}
		into.Union(grants)
	}
	return nil
}
