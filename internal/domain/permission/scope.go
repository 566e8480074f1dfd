package permission

import "fmt"

// ScopeKind discriminates the level at which a grant applies.
type ScopeKind string

const (
	ScopeGlobal       ScopeKind = "global"
	ScopeOrganization ScopeKind = "organization"
	ScopeProgram      ScopeKind = "program"
)

// Scope identifies where a role binding or direct grant applies: globally,
// on one organization, or on one program. The zero value is not valid; use
// the constructors.
type Scope struct {
	kind ScopeKind
	id   string
}

func GlobalScope() Scope {
	return Scope{kind: ScopeGlobal}
}

func OrganizationScope(orgID string) Scope {
	return Scope{kind: ScopeOrganization, id: orgID}
}

func ProgramScope(programID string) Scope {
	return Scope{kind: ScopeProgram, id: programID}
}

func (s Scope) Kind() ScopeKind {
	return s.kind
}

// ID returns the organization or program identifier; empty for global.
func (s Scope) ID() string {
	return s.id
}

func (s Scope) IsGlobal() bool {
	return s.kind == ScopeGlobal
}

// String renders the scope as a stable domain string, used as the casbin
// domain and in log output.
func (s Scope) String() string {
	switch s.kind {
	case ScopeGlobal:
		return "global"
	case ScopeOrganization:
		return "org:" + s.id
	case ScopeProgram:
		return "program:" + s.id
	default:
		return fmt.Sprintf("invalid:%s:%s", s.kind, s.id)
	}
}
