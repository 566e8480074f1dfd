// Package access computes a user's effective permissions on a program:
// organization-level resolution, program-direct grants, and the program
// type eligibility filter over enrollment-scoped kinds.
package access

import (
	"context"

	"registrar/internal/domain/directory"
	"registrar/internal/domain/permission"
	"registrar/internal/domain/program"
	"registrar/internal/shared/logger"
)

// MetadataProvider is the cached source of program metadata. Satisfied by
// the read-through program cache.
type MetadataProvider interface {
	Get(ctx context.Context, programUUID string) (*program.Metadata, error)
	Invalidate(ctx context.Context, programUUID string) error
}

type Service struct {
	resolver  *permission.Resolver
	store     permission.RoleGrantStore
	directory directory.Repository
	metadata  MetadataProvider
	catalog   *permission.Catalog
	logger    logger.Interface
}

func NewService(
	resolver *permission.Resolver,
	store permission.RoleGrantStore,
	dir directory.Repository,
	metadata MetadataProvider,
	catalog *permission.Catalog,
	log logger.Interface,
) *Service {
	return &Service{
		resolver:  resolver,
		store:     store,
		directory: dir,
		metadata:  metadata,
		catalog:   catalog,
		logger:    log,
	}
}

// ResolveProgram returns the user's effective permission kinds on the
// program: the union of global grants, grants at the managing
// organization, and program-direct grants, with enrollment-scoped kinds
// removed when the program's type does not support enrollments.
//
// A metadata failure is fatal to the call. Eligibility cannot be
// determined without metadata, so there is no "assume ineligible"
// fallback.
func (s *Service) ResolveProgram(ctx context.Context, userID, programUUID string) (permission.Set, error) {
	orgUUID, err := s.directory.ManagingOrganizationOf(ctx, programUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(ctx, userID, permission.OrganizationScope(orgUUID))
	if err != nil {
		return nil, err
	}

	direct, err := s.store.DirectPermissionsOf(ctx, userID, permission.ProgramScope(programUUID))
	if err != nil {
		return nil, err
	}
	result.Union(direct)

	meta, err := s.metadata.Get(ctx, programUUID)
	if err != nil {
		return nil, err
	}

	if !meta.IsEnrollmentEligible() {
		for _, kind := range result.Kinds() {
			if s.catalog.IsEnrollmentScoped(kind) {
				result.Remove(kind)
			}
		}
	}

	return result, nil
}

// ResolveOrganization returns the user's permission kinds at the
// organization, with global grants included.
func (s *Service) ResolveOrganization(ctx context.Context, userID, orgUUID string) (permission.Set, error) {
	return s.resolver.Resolve(ctx, userID, permission.OrganizationScope(orgUUID))
}

// HasProgramPermission reports whether the user effectively holds the
// kind on the program.
func (s *Service) HasProgramPermission(ctx context.Context, userID, programUUID string, kind permission.Kind) (bool, error) {
	perms, err := s.ResolveProgram(ctx, userID, programUUID)
	if err != nil {
		return false, err
	}
	return perms.Contains(kind), nil
}

// ProgramMetadata returns the cached metadata record for the program.
func (s *Service) ProgramMetadata(ctx context.Context, programUUID string) (*program.Metadata, error) {
	return s.metadata.Get(ctx, programUUID)
}

// FindCourseRun resolves a course identifier (internal or external key)
// inside the program.
func (s *Service) FindCourseRun(ctx context.Context, programUUID, courseID string) (*program.CourseRun, error) {
	meta, err := s.metadata.Get(ctx, programUUID)
	if err != nil {
		return nil, err
	}
	return meta.FindCourseRun(courseID)
}

// InvalidateProgram drops the cached metadata entry, for callers that
// know the remote record changed.
func (s *Service) InvalidateProgram(ctx context.Context, programUUID string) error {
	s.logger.Infow("invalidating cached program metadata", "program_uuid", programUUID)
	return s.metadata.Invalidate(ctx, programUUID)
}
