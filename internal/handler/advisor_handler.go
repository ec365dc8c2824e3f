package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsf-platform/advisor-api/internal/service"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
	"github.com/dsf-platform/advisor-api/pkg/response"
)

// AdvisorHandler manages course-advising endpoints.
type AdvisorHandler struct {
	service *service.AdvisorService
}

// NewAdvisorHandler constructs handler.
func NewAdvisorHandler(svc *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: svc}
}

// EnrollableCourses godoc
// @Summary List courses a student can enroll in next term
// @Tags Advising
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/enrollable-courses [get]
func (h *AdvisorHandler) EnrollableCourses(c *gin.Context) {
	result, err := h.service.EnrollableCourses(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// CourseSections godoc
// @Summary List offered sections of a course
// @Tags Advising
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/sections [get]
func (h *AdvisorHandler) CourseSections(c *gin.Context) {
	sections, err := h.service.CourseSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections)
}

// SelectCourses godoc
// @Summary Store the student's course selections on the session
// @Tags Advising
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.SelectCoursesRequest true "Course IDs"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/selections [post]
func (h *AdvisorHandler) SelectCourses(c *gin.Context) {
	var req service.SelectCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.SelectCourses(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// FinalizeSchedule godoc
// @Summary Assemble the final schedule from the session's selections
// @Tags Advising
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/schedule [post]
func (h *AdvisorHandler) FinalizeSchedule(c *gin.Context) {
	result, err := h.service.FinalizeSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// StudentDetails godoc
// @Summary Fetch the student details stored on the session
// @Tags Advising
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/student [get]
func (h *AdvisorHandler) StudentDetails(c *gin.Context) {
	details, err := h.service.StudentDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}
