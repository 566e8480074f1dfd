// Package program holds the cached view of a program as published by the
// remote discovery service: the flattened metadata record, the parser
// that builds it from a discovery payload, and course-run key resolution.
package program

import "time"

// SchemaVersion tags every parsed Metadata. Bump it when the shape of
// Metadata changes; cached entries with an older version are treated as
// absent and refetched, which is the migration mechanism for the cache.
const SchemaVersion = 1

// ProgramTypeMasters is the only program type for which enrollment
// management is supported.
const ProgramTypeMasters = "Masters"

// CourseRun is one run of a course inside the active curriculum. The
// external key is issued by the partner institution and may be absent.
type CourseRun struct {
	Key          string `json:"key"`
	ExternalKey  string `json:"external_key,omitempty"`
	Title        string `json:"title"`
	MarketingURL string `json:"marketing_url"`
}

// Metadata is the flattened, validated program record built from a
// discovery payload. It is immutable once built; the cache replaces
// entries wholesale on refresh.
type Metadata struct {
	SchemaVersion        int         `json:"schema_version"`
	LoadedAt             time.Time   `json:"loaded_at"`
	UUID                 string      `json:"uuid"`
	Title                string      `json:"title"`
	MarketingURL         string      `json:"marketing_url"`
	ProgramType          string      `json:"program_type"`
	ActiveCurriculumUUID string      `json:"active_curriculum_uuid,omitempty"`
	CourseRuns           []CourseRun `json:"course_runs"`
}

// IsEnrollmentEligible reports whether enrollment-scoped permissions are
// meaningful for this program's type.
func (m *Metadata) IsEnrollmentEligible() bool {
	return m.ProgramType == ProgramTypeMasters
}

// IsCurrentVersion reports whether the record was parsed by the current
// schema version.
func (m *Metadata) IsCurrentVersion() bool {
	return m.SchemaVersion == SchemaVersion
}
