package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	"github.com/dsf-platform/advisor-api/internal/schedule"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
)

type mockStudents struct {
	cells map[string][]string
	err   error
}

func (m *mockStudents) CoursesStillNeeded(ctx context.Context, studentID string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cells[studentID], nil
}

type mockOfferings struct {
	offered  []string
	sections map[string][]models.CourseOffering
	err      error
}

func (m *mockOfferings) OfferedCourseIDs(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.offered, nil
}

func (m *mockOfferings) SectionsByCourse(ctx context.Context, courseID string) ([]models.CourseOffering, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sections[courseID], nil
}

type mockSessionStore struct {
	states map[string]*models.SessionState
	saved  int
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (*models.SessionState, error) {
	if state, ok := m.states[id]; ok {
		copied := *state
		return &copied, nil
	}
	return nil, appErrors.ErrCacheMiss
}

func (m *mockSessionStore) Save(ctx context.Context, state *models.SessionState) error {
	if m.states == nil {
		m.states = make(map[string]*models.SessionState)
	}
	copied := *state
	m.states[state.ID] = &copied
	m.saved++
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.states, id)
	return nil
}

func newAdvisor(students *mockStudents, offerings *mockOfferings, sessions *mockSessionStore) *AdvisorService {
	builder := schedule.NewBuilder("/", true, zap.NewNop())
	return NewAdvisorService(students, offerings, sessions, builder, nil, validator.New(), zap.NewNop())
}

func TestEnrollableCourses(t *testing.T) {
	students := &mockStudents{cells: map[string][]string{"s1": {"CS101, MATH205"}}}
	offerings := &mockOfferings{offered: []string{"MATH205", "BIO220"}}
	svc := newAdvisor(students, offerings, &mockSessionStore{})

	result, err := svc.EnrollableCourses(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH205"}, result.Courses)
	assert.Equal(t, "1 courses are available for enrollment next term.", result.Message)
}

func TestEnrollableCoursesMissingID(t *testing.T) {
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, &mockSessionStore{})

	_, err := svc.EnrollableCourses(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrMissingIdentifier.Code, appErrors.FromError(err).Code)
}

func TestEnrollableCoursesNoNeededRecord(t *testing.T) {
	students := &mockStudents{cells: map[string][]string{"s1": {"nan", " "}}}
	svc := newAdvisor(students, &mockOfferings{offered: []string{"CS101"}}, &mockSessionStore{})

	_, err := svc.EnrollableCourses(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollableCoursesLookupFailure(t *testing.T) {
	students := &mockStudents{err: errors.New("connection refused")}
	svc := newAdvisor(students, &mockOfferings{}, &mockSessionStore{})

	_, err := svc.EnrollableCourses(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrExternalLookup.Code, appErrors.FromError(err).Code)
}

func TestCourseSectionsNotFound(t *testing.T) {
	svc := newAdvisor(&mockStudents{}, &mockOfferings{sections: map[string][]models.CourseOffering{}}, &mockSessionStore{})

	_, err := svc.CourseSections(context.Background(), "CS999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSelectCourses(t *testing.T) {
	sections := map[string][]models.CourseOffering{
		"CS101": {{ReferenceNumber: "111", CourseID: "CS101", ScheduleType: "LEC", MeetingDays: "M,W", StartTime: "900", EndTime: "950"}},
	}
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {ID: "sess", Version: 1}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{sections: sections}, sessions)

	result, err := svc.SelectCourses(context.Background(), "sess", SelectCoursesRequest{CourseIDs: []string{"CS101"}})
	require.NoError(t, err)
	assert.Len(t, result.SelectedCourses["CS101"], 1)

	state := sessions.states["sess"]
	assert.Equal(t, 2, state.Version)
	assert.Len(t, state.SelectedCourses["CS101"], 1)
}

func TestSelectCoursesUnknownCourseFailsWholeOp(t *testing.T) {
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {ID: "sess", Version: 1}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{sections: map[string][]models.CourseOffering{}}, sessions)

	_, err := svc.SelectCourses(context.Background(), "sess", SelectCoursesRequest{CourseIDs: []string{"CS999"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Nil(t, sessions.states["sess"].SelectedCourses)
}

func TestSelectCoursesValidation(t *testing.T) {
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, &mockSessionStore{})

	_, err := svc.SelectCourses(context.Background(), "sess", SelectCoursesRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFinalizeSchedule(t *testing.T) {
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {
		ID:      "sess",
		Version: 2,
		SelectedCourses: map[string][]models.CourseOffering{
			"CS101": {
				{ReferenceNumber: "111", CourseID: "CS101", ScheduleType: "LEC", MeetingDays: "M,W", StartTime: "900", EndTime: "950"},
				{ReferenceNumber: "112", CourseID: "CS101", ScheduleType: "DIS", MeetingDays: "F", StartTime: "1000", EndTime: "1050"},
			},
		},
	}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, sessions)

	result, err := svc.FinalizeSchedule(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "111/112", result.Schedule["CS101"].CRN)
	assert.Equal(t, 1, result.Summary.TotalCourses)
	assert.Equal(t, 2, result.Summary.TotalSections)

	state := sessions.states["sess"]
	assert.Equal(t, 3, state.Version)
	assert.Len(t, state.FinalSchedule["CS101"].Sections, 2)
}

func TestFinalizeScheduleHonorsConstraints(t *testing.T) {
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {
		ID: "sess",
		SelectedCourses: map[string][]models.CourseOffering{
			"CS101": {
				{ReferenceNumber: "111", ScheduleType: "LEC", MeetingDays: "M", StartTime: "900", EndTime: "950"},
				{ReferenceNumber: "112", ScheduleType: "LEC", MeetingDays: "W", StartTime: "900", EndTime: "950"},
			},
		},
		Constraints: &models.ElectiveConstraints{AvoidedDays: []string{"Monday"}},
	}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, sessions)

	result, err := svc.FinalizeSchedule(context.Background(), "sess")
	require.NoError(t, err)
	require.Len(t, result.DetailedSchedule["CS101"].Sections, 1)
	assert.Equal(t, "112", result.DetailedSchedule["CS101"].Sections[0].ReferenceNumber)
}

func TestFinalizeScheduleNoSelections(t *testing.T) {
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {ID: "sess"}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, sessions)

	_, err := svc.FinalizeSchedule(context.Background(), "sess")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFinalizeScheduleSessionMissing(t *testing.T) {
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, &mockSessionStore{})

	_, err := svc.FinalizeSchedule(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentDetails(t *testing.T) {
	sessions := &mockSessionStore{states: map[string]*models.SessionState{"sess": {
		ID:             "sess",
		StudentDetails: map[string]interface{}{"Student_ID": "s1", "year": "junior"},
	}}}
	svc := newAdvisor(&mockStudents{}, &mockOfferings{}, sessions)

	details, err := svc.StudentDetails(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "s1", details["Student_ID"])

	sessions.states["empty"] = &models.SessionState{ID: "empty"}
	_, err = svc.StudentDetails(context.Background(), "empty")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
