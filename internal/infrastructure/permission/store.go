// Package permission provides the casbin-backed implementation of the
// role/grant store. Role bindings are grouping rules (user, role, domain)
// and direct permission grants are policy rules (user, domain, kind);
// domains are the string form of a grant scope. Role-to-kind expansion is
// not casbin's job here; that stays in the catalog.
package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"registrar/internal/domain/permission"
	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

var _ permission.RoleGrantStore = (*GrantStore)(nil)

type GrantStore struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewGrantStore wraps an already-constructed enforcer. Used by tests and
// by callers that manage the adapter themselves.
func NewGrantStore(enforcer *casbin.Enforcer, log logger.Interface) *GrantStore {
	return &GrantStore{
		enforcer: enforcer,
		logger:   log,
	}
}

// NewGrantStoreWithDB builds an enforcer over a gorm adapter and loads
// the persisted policy.
func NewGrantStoreWithDB(db *gorm.DB, log logger.Interface) (*GrantStore, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := newGrantModel()
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return NewGrantStore(enforcer, log), nil
}

// RolesOf returns the role names bound to the user at the given scope.
func (s *GrantStore) RolesOf(ctx context.Context, userID string, scope permission.Scope) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles, err := s.enforcer.GetRolesForUser(userID, scope.String())
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read role bindings", err.Error())
	}
	return roles, nil
}

// DirectPermissionsOf returns the permission kinds granted directly to
// the user at the given scope. Rows with a kind the catalog no longer
// knows are skipped with a warning rather than failing the read.
func (s *GrantStore) DirectPermissionsOf(ctx context.Context, userID string, scope permission.Scope) (permission.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.enforcer.GetFilteredPolicy(0, userID, scope.String())
	if err != nil {
		return nil, apperrors.NewStoreError("failed to read direct grants", err.Error())
	}

	result := permission.NewSet()
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		kind, err := permission.ParseKind(row[2])
		if err != nil {
			s.logger.Warnw("skipping grant with unknown permission kind",
				"user_id", userID, "scope", scope.String(), "kind", row[2])
			continue
		}
		result.Add(kind)
	}
	return result, nil
}

// AssignRole binds a role to the user at the given scope.
func (s *GrantStore) AssignRole(ctx context.Context, userID, roleName string, scope permission.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.AddRoleForUserInDomain(userID, roleName, scope.String()); err != nil {
		return apperrors.NewStoreError("failed to assign role", err.Error())
	}
	return s.savePolicy()
}

// RevokeRole removes a role binding from the user at the given scope.
func (s *GrantStore) RevokeRole(ctx context.Context, userID, roleName string, scope permission.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.DeleteRoleForUserInDomain(userID, roleName, scope.String()); err != nil {
		return apperrors.NewStoreError("failed to revoke role", err.Error())
	}
	return s.savePolicy()
}

// GrantPermission grants a permission kind directly to the user at the
// given scope.
func (s *GrantStore) GrantPermission(ctx context.Context, userID string, kind permission.Kind, scope permission.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.AddPolicy(userID, scope.String(), kind.String()); err != nil {
		return apperrors.NewStoreError("failed to grant permission", err.Error())
	}
	return s.savePolicy()
}

// RevokePermission removes a direct permission grant.
func (s *GrantStore) RevokePermission(ctx context.Context, userID string, kind permission.Kind, scope permission.Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.enforcer.RemovePolicy(userID, scope.String(), kind.String()); err != nil {
		return apperrors.NewStoreError("failed to revoke permission", err.Error())
	}
	return s.savePolicy()
}

func (s *GrantStore) savePolicy() error {
	// In-memory enforcers have no adapter to save to.
	if s.enforcer.GetAdapter() == nil {
		return nil
	}
	if err := s.enforcer.SavePolicy(); err != nil {
		return apperrors.NewStoreError("failed to persist policy", err.Error())
	}
	return nil
}
