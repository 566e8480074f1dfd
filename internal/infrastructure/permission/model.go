package permission

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"registrar/internal/shared/logger"
)

// grantModel stores grants three-valued: subject, domain, permission
// kind. The matcher is only exercised if a caller asks casbin to enforce
// directly; resolution reads the rules and expands roles via the catalog.
const grantModel = `[request_definition]
r = sub, dom, perm

[policy_definition]
p = sub, dom, perm

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.perm == p.perm
`

func newGrantModel() (model.Model, error) {
	return model.NewModelFromString(grantModel)
}

// NewInMemoryGrantStore builds a store with no persistence behind it.
// Grants live only for the process lifetime; intended for tests and
// local development.
func NewInMemoryGrantStore(log logger.Interface) (*GrantStore, error) {
	m, err := newGrantModel()
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	return NewGrantStore(enforcer, log), nil
}
