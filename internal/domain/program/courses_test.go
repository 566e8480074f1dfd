package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "registrar/internal/shared/errors"
)

func testMetadata() *Metadata {
	return &Metadata{
		SchemaVersion: SchemaVersion,
		UUID:          "prog-uuid",
		ProgramType:   ProgramTypeMasters,
		CourseRuns: []CourseRun{
			{Key: "course-v1:A+1", ExternalKey: "EXT-A1", Title: "A1"},
			{Key: "course-v1:B+1", Title: "B1"},
			{Key: "course-v1:B+2", ExternalKey: "EXT-B2", Title: "B2"},
		},
	}
}

func TestFindCourseRunByEitherKey(t *testing.T) {
	meta := testMetadata()

	byInternal, err := meta.FindCourseRun("course-v1:A+1")
	require.NoError(t, err)
	assert.Equal(t, "A1", byInternal.Title)

	byExternal, err := meta.FindCourseRun("EXT-A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", byExternal.Title)
}

func TestFindCourseRunNotFound(t *testing.T) {
	_, err := testMetadata().FindCourseRun("course-v1:Z+9")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestInternalKey(t *testing.T) {
	meta := testMetadata()

	key, err := meta.InternalKey("EXT-B2")
	require.NoError(t, err)
	assert.Equal(t, "course-v1:B+2", key)

	key, err = meta.InternalKey("course-v1:B+2")
	require.NoError(t, err)
	assert.Equal(t, "course-v1:B+2", key)

	_, err = meta.InternalKey("missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestExternalKey(t *testing.T) {
	meta := testMetadata()

	key, err := meta.ExternalKey("course-v1:A+1")
	require.NoError(t, err)
	assert.Equal(t, "EXT-A1", key)

	// Runs without an external key resolve to the empty string.
	key, err = meta.ExternalKey("course-v1:B+1")
	require.NoError(t, err)
	assert.Equal(t, "", key)

	_, err = meta.ExternalKey("missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}
