package program

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

func newTestParser() *Parser {
	return NewParser(logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler)))
}

const programPayload = `{
	"title": "Masters in Data Science",
	"marketing_url": "https://example.com/masters-ds",
	"type": "Masters",
	"curricula": [
		{
			"uuid": "curriculum-inactive",
			"is_active": false,
			"courses": [
				{"course_runs": [{"key": "stale", "title": "stale"}]}
			]
		},
		{
			"uuid": "curriculum-active",
			"is_active": true,
			"courses": [
				{
					"course_runs": [
						{"key": "course-v1:DSx+100+2026", "external_key": "DS-100", "title": "Intro", "marketing_url": "https://example.com/100"}
					]
				},
				{
					"course_runs": [
						{"key": "course-v1:DSx+200+2026", "title": "Statistics", "marketing_url": "https://example.com/200"},
						{"key": "course-v1:DSx+201+2026", "external_key": "DS-201", "title": "Statistics II", "marketing_url": "https://example.com/201"}
					]
				}
			]
		}
	]
}`

func TestParseFlattensCourseRunsInOrder(t *testing.T) {
	meta, err := newTestParser().Parse("prog-uuid", []byte(programPayload))
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, meta.SchemaVersion)
	assert.Equal(t, "prog-uuid", meta.UUID)
	assert.Equal(t, "Masters in Data Science", meta.Title)
	assert.Equal(t, "https://example.com/masters-ds", meta.MarketingURL)
	assert.Equal(t, "Masters", meta.ProgramType)
	assert.Equal(t, "curriculum-active", meta.ActiveCurriculumUUID)
	assert.False(t, meta.LoadedAt.IsZero())

	require.Len(t, meta.CourseRuns, 3)
	assert.Equal(t, "course-v1:DSx+100+2026", meta.CourseRuns[0].Key)
	assert.Equal(t, "course-v1:DSx+200+2026", meta.CourseRuns[1].Key)
	assert.Equal(t, "course-v1:DSx+201+2026", meta.CourseRuns[2].Key)
	assert.Equal(t, "DS-100", meta.CourseRuns[0].ExternalKey)
	assert.Equal(t, "", meta.CourseRuns[1].ExternalKey)
}

func TestParseNoActiveCurriculum(t *testing.T) {
	payload := `{
		"title": "Archived Program",
		"type": "MicroMasters",
		"curricula": [
			{"uuid": "c1", "is_active": false, "courses": []}
		]
	}`

	meta, err := newTestParser().Parse("prog-uuid", []byte(payload))
	require.NoError(t, err)

	assert.Equal(t, "", meta.ActiveCurriculumUUID)
	assert.Empty(t, meta.CourseRuns)
}

func TestParseFirstActiveCurriculumWins(t *testing.T) {
	payload := `{
		"title": "Doubly Active",
		"type": "Masters",
		"curricula": [
			{"uuid": "first", "is_active": true, "courses": []},
			{"uuid": "second", "is_active": true, "courses": []}
		]
	}`

	meta, err := newTestParser().Parse("prog-uuid", []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "first", meta.ActiveCurriculumUUID)
}

func TestParseMissingCurriculaDefaultsEmpty(t *testing.T) {
	meta, err := newTestParser().Parse("prog-uuid", []byte(`{"title": "Bare", "type": "Masters"}`))
	require.NoError(t, err)
	assert.Equal(t, "", meta.ActiveCurriculumUUID)
	assert.Empty(t, meta.CourseRuns)
	assert.Equal(t, "", meta.MarketingURL)
}

func TestParseToleratesWrongTypedOptionalFields(t *testing.T) {
	payload := `{
		"title": "Odd Payload",
		"type": "Masters",
		"marketing_url": 42,
		"curricula": "not-a-list"
	}`

	meta, err := newTestParser().Parse("prog-uuid", []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "", meta.MarketingURL)
	assert.Empty(t, meta.CourseRuns)
}

func TestParseValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"not an object", `[1, 2, 3]`},
		{"missing title", `{"type": "Masters"}`},
		{"missing type", `{"title": "No Type"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestParser().Parse("prog-uuid", []byte(tt.payload))
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
		})
	}
}

func TestIsEnrollmentEligible(t *testing.T) {
	assert.True(t, (&Metadata{ProgramType: "Masters"}).IsEnrollmentEligible())
	assert.False(t, (&Metadata{ProgramType: "MicroMasters"}).IsEnrollmentEligible())
	assert.False(t, (&Metadata{}).IsEnrollmentEligible())
}
