package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	"github.com/dsf-platform/advisor-api/internal/service"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
)

type studentReaderMock struct {
	cells map[string][]string
}

func (m *studentReaderMock) CoursesStillNeeded(ctx context.Context, studentID string) ([]string, error) {
	return m.cells[studentID], nil
}

type offeringReaderMock struct {
	offered  []string
	sections map[string][]models.CourseOffering
}

func (m *offeringReaderMock) OfferedCourseIDs(ctx context.Context) ([]string, error) {
	return m.offered, nil
}

func (m *offeringReaderMock) SectionsByCourse(ctx context.Context, courseID string) ([]models.CourseOffering, error) {
	return m.sections[courseID], nil
}

func newAdvisorHandler(students *studentReaderMock, offerings *offeringReaderMock, store *sessionStoreMock) *AdvisorHandler {
	svc := service.NewAdvisorService(students, offerings, store, nil, nil, nil, zap.NewNop())
	return NewAdvisorHandler(svc)
}

func TestAdvisorHandlerEnrollableCourses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAdvisorHandler(
		&studentReaderMock{cells: map[string][]string{"s1": {"CS101, MATH205"}}},
		&offeringReaderMock{offered: []string{"CS101"}},
		&sessionStoreMock{},
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students/s1/enrollable-courses", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.EnrollableCourses(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"CS101"}, data["courses"])
}

func TestAdvisorHandlerEnrollableCoursesUnknownStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAdvisorHandler(&studentReaderMock{}, &offeringReaderMock{}, &sessionStoreMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/students/unknown/enrollable-courses", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "unknown"}}

	handler.EnrollableCourses(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrNotFound.Code, envelope.Error.Code)
}

func TestAdvisorHandlerSelectCourses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &sessionStoreMock{states: map[string]*models.SessionState{"sess": {ID: "sess", Version: 1}}}
	handler := newAdvisorHandler(
		&studentReaderMock{},
		&offeringReaderMock{sections: map[string][]models.CourseOffering{
			"CS101": {{ReferenceNumber: "111", CourseID: "CS101", ScheduleType: "LEC", MeetingDays: "M", StartTime: "900", EndTime: "950"}},
		}},
		store,
	)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.SelectCoursesRequest{CourseIDs: []string{"CS101"}})
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess/selections", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess"}}

	handler.SelectCourses(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.states["sess"].SelectedCourses["CS101"], 1)
}

func TestAdvisorHandlerFinalizeSchedule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &sessionStoreMock{states: map[string]*models.SessionState{"sess": {
		ID:      "sess",
		Version: 1,
		SelectedCourses: map[string][]models.CourseOffering{
			"CS101": {
				{ReferenceNumber: "111", ScheduleType: "LEC", MeetingDays: "M,W", StartTime: "900", EndTime: "950"},
				{ReferenceNumber: "112", ScheduleType: "DIS", MeetingDays: "F", StartTime: "1000", EndTime: "1050"},
			},
		},
	}}}
	handler := newAdvisorHandler(&studentReaderMock{}, &offeringReaderMock{}, store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess/schedule", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess"}}

	handler.FinalizeSchedule(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	schedule := data["schedule"].(map[string]interface{})
	entry := schedule["CS101"].(map[string]interface{})
	assert.Equal(t, "111/112", entry["CRN"])
	assert.Len(t, store.states["sess"].FinalSchedule["CS101"].Sections, 2)
}

func TestAdvisorHandlerFinalizeScheduleEmptySession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &sessionStoreMock{states: map[string]*models.SessionState{"sess": {ID: "sess"}}}
	handler := newAdvisorHandler(&studentReaderMock{}, &offeringReaderMock{}, store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess/schedule", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess"}}

	handler.FinalizeSchedule(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdvisorHandlerStudentDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &sessionStoreMock{states: map[string]*models.SessionState{"sess": {
		ID:             "sess",
		StudentDetails: map[string]interface{}{"Student_ID": "s1"},
	}}}
	handler := newAdvisorHandler(&studentReaderMock{}, &offeringReaderMock{}, store)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/sessions/sess/student", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sess"}}

	handler.StudentDetails(c)
	require.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "s1", data["Student_ID"])
}
