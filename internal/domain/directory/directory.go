// Package directory holds the locally registered organizations and the
// programs they manage. It is the lookup used to connect a program to
// the organization whose role bindings govern it.
package directory

import "context"

// Organization is a partner institution that manages programs.
type Organization struct {
	UUID string
	Key  string
	Name string
}

// Program is a locally registered program, linked to its discovery
// record by UUID and to exactly one managing organization.
type Program struct {
	UUID            string
	Key             string
	Title           string
	ManagingOrgUUID string
}

// Repository is the read contract over the directory. Lookups by an
// unregistered UUID fail with a not-found error; storage failures
// surface as store errors.
type Repository interface {
	GetProgram(ctx context.Context, programUUID string) (*Program, error)
	GetOrganization(ctx context.Context, orgUUID string) (*Organization, error)

	// ManagingOrganizationOf returns the UUID of the organization that
	// manages the program.
	ManagingOrganizationOf(ctx context.Context, programUUID string) (string, error)
}
