package program

import (
	"encoding/json"
	"time"

	apperrors "registrar/internal/shared/errors"
	"registrar/internal/shared/logger"
)

// Parser turns raw discovery JSON into a Metadata record. Fields with an
// unexpected type are treated the same as absent fields; only a payload
// that is not a JSON object, or one missing the title or type fields,
// fails validation.
type Parser struct {
	logger logger.Interface
}

func NewParser(log logger.Interface) *Parser {
	return &Parser{logger: log}
}

// Parse builds a Metadata from the discovery payload for programUUID.
//
// Exactly one active curriculum is expected. When none is flagged active
// the program is assumed to have no enrollable content: the result has no
// curriculum UUID and no course runs, and a diagnostic is logged instead
// of failing. When several are flagged active the first in payload order
// wins.
func (p *Parser) Parse(programUUID string, raw []byte) (*Metadata, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewValidationError("program payload is not a JSON object", err.Error())
	}

	title, ok := doc["title"].(string)
	if !ok {
		return nil, apperrors.NewValidationError("program payload is missing title", programUUID)
	}
	programType, ok := doc["type"].(string)
	if !ok {
		return nil, apperrors.NewValidationError("program payload is missing type", programUUID)
	}
	marketingURL, _ := doc["marketing_url"].(string)

	meta := &Metadata{
		SchemaVersion: SchemaVersion,
		LoadedAt:      time.Now().UTC(),
		UUID:          programUUID,
		Title:         title,
		MarketingURL:  marketingURL,
		ProgramType:   programType,
		CourseRuns:    []CourseRun{},
	}

	curriculum := p.activeCurriculum(doc)
	if curriculum == nil {
		p.logger.Warnw("discovery returned no active curricula for program",
			"program_uuid", programUUID)
		return meta, nil
	}

	meta.ActiveCurriculumUUID, _ = curriculum["uuid"].(string)
	meta.CourseRuns = flattenCourseRuns(curriculum)
	return meta, nil
}

func (p *Parser) activeCurriculum(doc map[string]any) map[string]any {
	curricula, _ := doc["curricula"].([]any)
	for _, entry := range curricula {
		curriculum, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if active, _ := curriculum["is_active"].(bool); active {
			return curriculum
		}
	}
	return nil
}

// flattenCourseRuns collects every course run of every course in the
// curriculum into one sequence, preserving payload order. That order is
// the canonical course-run order of the program.
func flattenCourseRuns(curriculum map[string]any) []CourseRun {
	runs := []CourseRun{}
	courses, _ := curriculum["courses"].([]any)
	for _, courseEntry := range courses {
		course, ok := courseEntry.(map[string]any)
		if !ok {
			continue
		}
		courseRuns, _ := course["course_runs"].([]any)
		for _, runEntry := range courseRuns {
			run, ok := runEntry.(map[string]any)
			if !ok {
				continue
			}
			key, _ := run["key"].(string)
			externalKey, _ := run["external_key"].(string)
			title, _ := run["title"].(string)
			marketingURL, _ := run["marketing_url"].(string)
			runs = append(runs, CourseRun{
				Key:          key,
				ExternalKey:  externalKey,
				Title:        title,
				MarketingURL: marketingURL,
			})
		}
	}
	return runs
}
