package program

import apperrors "registrar/internal/shared/errors"

// FindCourseRun returns the first course run whose key or external key
// equals courseID. Callers may hold either identifier; the symmetry is
// intentional.
func (m *Metadata) FindCourseRun(courseID string) (*CourseRun, error) {
	for i := range m.CourseRuns {
		run := &m.CourseRuns[i]
		if courseID == run.Key || (run.ExternalKey != "" && courseID == run.ExternalKey) {
			return run, nil
		}
	}
	return nil, apperrors.NewNotFoundError("course run not found in program", courseID)
}

// InternalKey resolves courseID (internal or external) to the internal
// course-run key.
func (m *Metadata) InternalKey(courseID string) (string, error) {
	run, err := m.FindCourseRun(courseID)
	if err != nil {
		return "", err
	}
	return run.Key, nil
}

// ExternalKey resolves courseID (internal or external) to the external
// course-run key. The result may be empty when the run has no external key.
func (m *Metadata) ExternalKey(courseID string) (string, error) {
	run, err := m.FindCourseRun(courseID)
	if err != nil {
		return "", err
	}
	return run.ExternalKey, nil
}
