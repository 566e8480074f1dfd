package permission

// Role is a named, fixed bundle of permission kinds. Roles are defined
// once in the catalog and never mutated at runtime.
type Role struct {
	name   string
	grants Set
}

func NewRole(name string, kinds ...Kind) Role {
	return Role{
		name:   name,
		grants: NewSet(kinds...),
	}
}

func (r Role) Name() string {
	return r.name
}

// Grants returns a copy of the kinds this role confers.
func (r Role) Grants() Set {
	return r.grants.Clone()
}
