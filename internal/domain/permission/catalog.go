package permission

import (
	apperrors "registrar/internal/shared/errors"
)

// Organization role names as stored in the grant store. Each role bundles
// the metadata read right with progressively wider enrollment rights.
const (
	RoleOrganizationReadMetadata         = "organization_read_metadata"
	RoleOrganizationReadEnrollments      = "organization_read_enrollments"
	RoleOrganizationReadWriteEnrollments = "organization_read_write_enrollments"
	RoleOrganizationReadReports          = "organization_read_reports"
)

// Catalog is the immutable mapping from role name to granted kinds,
// plus the classification of enrollment-scoped kinds. It is built once
// at startup and shared read-only between resolvers.
type Catalog struct {
	roles            map[string]Role
	enrollmentScoped map[Kind]bool
}

// NewCatalog builds a catalog from the given roles. Enrollment-scoped
// classification is fixed: read_enrollments and write_enrollments are
// only meaningful for programs whose type supports enrollment management.
func NewCatalog(roles ...Role) *Catalog {
	byName := make(map[string]Role, len(roles))
	for _, r := range roles {
		byName[r.Name()] = r
	}
	return &Catalog{
		roles: byName,
		enrollmentScoped: map[Kind]bool{
			KindReadEnrollments:  true,
			KindWriteEnrollments: true,
		},
	}
}

// DefaultCatalog returns the catalog with the standard organization roles.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		NewRole(RoleOrganizationReadMetadata,
			KindReadMetadata),
		NewRole(RoleOrganizationReadEnrollments,
			KindReadMetadata, KindReadEnrollments),
		NewRole(RoleOrganizationReadWriteEnrollments,
			KindReadMetadata, KindReadEnrollments, KindWriteEnrollments),
		NewRole(RoleOrganizationReadReports,
			KindReadMetadata, KindReadReports),
	)
}

// RoleGrants returns the kinds granted by the named role. An unregistered
// role name is a configuration fault, surfaced as an UnknownRole error.
func (c *Catalog) RoleGrants(roleName string) (Set, error) {
	role, ok := c.roles[roleName]
	if !ok {
		return nil, apperrors.NewUnknownRoleError(roleName)
	}
	return role.Grants(), nil
}

// IsEnrollmentScoped reports whether the kind is subject to the program
// type eligibility filter.
func (c *Catalog) IsEnrollmentScoped(kind Kind) bool {
	return c.enrollmentScoped[kind]
}

// RoleNames returns the registered role names, for diagnostics.
func (c *Catalog) RoleNames() []string {
	out := make([]string, 0, len(c.roles))
	for name := range c.roles {
		out = append(out, name)
	}
	return out
}
