package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"registrar/internal/application/access"
	"registrar/internal/domain/permission"
	"registrar/internal/domain/program"
	"registrar/internal/interfaces/http/middleware"
	"registrar/internal/shared/logger"
	"registrar/internal/shared/utils"
)

type ProgramHandler struct {
	access *access.Service
	logger logger.Interface
}

func NewProgramHandler(accessService *access.Service, log logger.Interface) *ProgramHandler {
	return &ProgramHandler{
		access: accessService,
		logger: log,
	}
}

type courseRunResponse struct {
	Key          string `json:"key"`
	ExternalKey  string `json:"external_key,omitempty"`
	Title        string `json:"title"`
	MarketingURL string `json:"marketing_url"`
}

type programResponse struct {
	UUID                 string              `json:"uuid"`
	Title                string              `json:"title"`
	ProgramType          string              `json:"program_type"`
	MarketingURL         string              `json:"marketing_url"`
	ActiveCurriculumUUID string              `json:"active_curriculum_uuid,omitempty"`
	CourseRuns           []courseRunResponse `json:"course_runs"`
}

func toProgramResponse(meta *program.Metadata) programResponse {
	runs := make([]courseRunResponse, 0, len(meta.CourseRuns))
	for _, run := range meta.CourseRuns {
		runs = append(runs, courseRunResponse(run))
	}
	return programResponse{
		UUID:                 meta.UUID,
		Title:                meta.Title,
		ProgramType:          meta.ProgramType,
		MarketingURL:         meta.MarketingURL,
		ActiveCurriculumUUID: meta.ActiveCurriculumUUID,
		CourseRuns:           runs,
	}
}

// GetProgram returns the cached metadata view of a program.
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programUUID, ok := h.authorizeMetadataRead(c)
	if !ok {
		return
	}

	meta, err := h.access.ProgramMetadata(c.Request.Context(), programUUID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toProgramResponse(meta))
}

// GetPermissions returns the caller's effective permission kinds on the
// program.
func (h *ProgramHandler) GetPermissions(c *gin.Context) {
	programUUID := c.Param("uuid")
	if _, err := uuid.Parse(programUUID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid program uuid")
		return
	}

	perms, err := h.access.ResolveProgram(c.Request.Context(), middleware.UserUUID(c), programUUID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"permissions": perms.Strings()})
}

// GetCourseRun resolves a course identifier, internal or external, to
// the matching course run in the program.
func (h *ProgramHandler) GetCourseRun(c *gin.Context) {
	programUUID, ok := h.authorizeMetadataRead(c)
	if !ok {
		return
	}

	run, err := h.access.FindCourseRun(c.Request.Context(), programUUID, c.Param("course_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", courseRunResponse(*run))
}

// InvalidateCache drops the cached metadata for a program so the next
// read refetches from discovery.
func (h *ProgramHandler) InvalidateCache(c *gin.Context) {
	programUUID, ok := h.authorizeMetadataRead(c)
	if !ok {
		return
	}

	if err := h.access.InvalidateProgram(c.Request.Context(), programUUID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "program metadata cache invalidated", nil)
}

// authorizeMetadataRead validates the uuid parameter and checks that the
// caller effectively holds read_metadata on the program. It writes the
// error response itself and reports whether the request may proceed.
func (h *ProgramHandler) authorizeMetadataRead(c *gin.Context) (string, bool) {
	programUUID := c.Param("uuid")
	if _, err := uuid.Parse(programUUID); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid program uuid")
		return "", false
	}

	allowed, err := h.access.HasProgramPermission(
		c.Request.Context(), middleware.UserUUID(c), programUUID, permission.KindReadMetadata)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", false
	}
	if !allowed {
		utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions for program")
		return "", false
	}
	return programUUID, true
}
