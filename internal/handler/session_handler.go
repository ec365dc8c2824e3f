package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dsf-platform/advisor-api/internal/service"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
	"github.com/dsf-platform/advisor-api/pkg/response"
)

// SessionHandler manages advising-session endpoints.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Create godoc
// @Summary Create advising session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body service.CreateSessionRequest false "Optional student details seed"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req service.CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	state, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, state)
}

// Get godoc
// @Summary Fetch advising session state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	state, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}

// Delete godoc
// @Summary Delete advising session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetConstraints godoc
// @Summary Store elective constraints on a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body service.SetConstraintsRequest true "Constraints payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/constraints [put]
func (h *SessionHandler) SetConstraints(c *gin.Context) {
	var req service.SetConstraintsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	state, err := h.service.SetConstraints(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state)
}
