package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	"github.com/dsf-platform/advisor-api/internal/schedule"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
)

type studentRequirementsReader interface {
	CoursesStillNeeded(ctx context.Context, studentID string) ([]string, error)
}

type offeringsReader interface {
	OfferedCourseIDs(ctx context.Context) ([]string, error)
	SectionsByCourse(ctx context.Context, courseID string) ([]models.CourseOffering, error)
}

// EnrollableCoursesResult lists the courses a student can enroll in next term.
type EnrollableCoursesResult struct {
	Message string   `json:"message"`
	Courses []string `json:"courses"`
}

// SelectCoursesRequest names the courses the student wants considered.
type SelectCoursesRequest struct {
	CourseIDs []string `json:"course_ids" validate:"required,min=1,dive,required"`
}

// SelectCoursesResult reports how many courses were stored on the session.
type SelectCoursesResult struct {
	Message         string                             `json:"message"`
	SelectedCourses map[string][]models.CourseOffering `json:"selected_courses"`
}

// ScheduleResult is the finalize-schedule payload: the legacy display view,
// the detailed view and the summary.
type ScheduleResult struct {
	Message          string                                 `json:"message"`
	Schedule         map[string]models.LegacyCourseSchedule `json:"schedule"`
	DetailedSchedule map[string]models.CourseSchedule       `json:"detailed_schedule"`
	Summary          models.ScheduleSummary                 `json:"summary"`
	Skipped          []string                               `json:"skipped,omitempty"`
}

// AdvisorService exposes the course-advising operations: eligibility
// resolution, course detail lookup, selection storage and schedule assembly.
type AdvisorService struct {
	students  studentRequirementsReader
	offerings offeringsReader
	sessions  sessionStore
	builder   *schedule.Builder
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdvisorService constructs AdvisorService.
func NewAdvisorService(students studentRequirementsReader, offerings offeringsReader, sessions sessionStore, builder *schedule.Builder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AdvisorService {
	if builder == nil {
		builder = schedule.NewBuilder(schedule.DefaultSeparator, true, logger)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorService{students: students, offerings: offerings, sessions: sessions, builder: builder, metrics: metrics, validator: validate, logger: logger}
}

// EnrollableCourses intersects the courses a student still needs with the
// courses offered next term. The three failure modes stay distinguishable:
// missing identifier, no requirement record, and warehouse lookup failure.
func (s *AdvisorService) EnrollableCourses(ctx context.Context, studentID string) (*EnrollableCoursesResult, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingIdentifier, "student ID is required")
	}

	start := time.Now()
	cells, err := s.students.CoursesStillNeeded(ctx, studentID)
	s.observeQuery("courses_still_needed", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternalLookup.Code, appErrors.ErrExternalLookup.Status, "failed to load student requirements")
	}

	needed := schedule.ParseNeededCourses(cells)
	if len(needed) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no needed-courses record found for student")
	}

	start = time.Now()
	offered, err := s.offerings.OfferedCourseIDs(ctx)
	s.observeQuery("offered_course_ids", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternalLookup.Code, appErrors.ErrExternalLookup.Status, "failed to load course offerings")
	}

	eligible := schedule.Intersect(needed, offered)
	s.logger.Info("resolved enrollable courses",
		zap.String("student_id", studentID),
		zap.Int("needed", len(needed)),
		zap.Int("eligible", len(eligible)))

	return &EnrollableCoursesResult{
		Message: fmt.Sprintf("%d courses are available for enrollment next term.", len(eligible)),
		Courses: eligible,
	}, nil
}

// CourseSections returns every offered section of a course.
func (s *AdvisorService) CourseSections(ctx context.Context, courseID string) ([]models.CourseOffering, error) {
	if courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingIdentifier, "course ID is required")
	}

	start := time.Now()
	sections, err := s.offerings.SectionsByCourse(ctx, courseID)
	s.observeQuery("sections_by_course", start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternalLookup.Code, appErrors.ErrExternalLookup.Status, "failed to load course sections")
	}
	if len(sections) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no offerings found for course %q", courseID))
	}
	return sections, nil
}

// SelectCourses fetches each requested course's sections and stores the
// projected records on the session. A course with no retrievable sections
// fails the whole operation so the student can adjust their pick.
func (s *AdvisorService) SelectCourses(ctx context.Context, sessionID string, req SelectCoursesRequest) (*SelectCoursesResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course selection payload")
	}

	state, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string][]models.CourseOffering, len(req.CourseIDs))
	for _, courseID := range req.CourseIDs {
		sections, err := s.CourseSections(ctx, courseID)
		if err != nil {
			if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("could not retrieve details for course %q", courseID))
			}
			return nil, err
		}
		selected[courseID] = sections
	}

	state.SelectedCourses = selected
	if err := s.saveSession(ctx, state); err != nil {
		return nil, err
	}

	return &SelectCoursesResult{
		Message:         fmt.Sprintf("Added %d selected courses to the session.", len(selected)),
		SelectedCourses: selected,
	}, nil
}

// FinalizeSchedule runs the schedule builder over the session's selected
// courses and constraints, stores the detailed result on the session and
// returns both schedule views. Only a session with no selected courses at
// all is a top-level error; per-course failures degrade the result.
func (s *AdvisorService) FinalizeSchedule(ctx context.Context, sessionID string) (*ScheduleResult, error) {
	state, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(state.SelectedCourses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no courses found in session; select courses first")
	}

	var cons models.ElectiveConstraints
	if state.Constraints != nil {
		cons = *state.Constraints
	}

	start := time.Now()
	built := s.builder.Build(state.SelectedCourses, cons)
	if s.metrics != nil {
		s.metrics.ObserveScheduleBuild(time.Since(start), built.Summary.TotalCourses, len(built.Skipped))
	}

	state.FinalSchedule = built.Detailed
	if err := s.saveSession(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("schedule finalized",
		zap.String("session_id", sessionID),
		zap.Int("courses", built.Summary.TotalCourses),
		zap.Int("sections", built.Summary.TotalSections),
		zap.Int("skipped", len(built.Skipped)))

	return &ScheduleResult{
		Message:          fmt.Sprintf("Final schedule constructed with %d courses and %d sections.", built.Summary.TotalCourses, built.Summary.TotalSections),
		Schedule:         built.Legacy,
		DetailedSchedule: built.Detailed,
		Summary:          built.Summary,
		Skipped:          built.Skipped,
	}, nil
}

// StudentDetails returns the student record stored on the session.
func (s *AdvisorService) StudentDetails(ctx context.Context, sessionID string) (map[string]interface{}, error) {
	state, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(state.StudentDetails) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student details not found in session")
	}
	return state.StudentDetails, nil
}

func (s *AdvisorService) loadSession(ctx context.Context, sessionID string) (*models.SessionState, error) {
	if sessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingIdentifier, "session ID is required")
	}
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return state, nil
}

func (s *AdvisorService) saveSession(ctx context.Context, state *models.SessionState) error {
	state.Version++
	state.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, state); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return nil
}

func (s *AdvisorService) observeQuery(name string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveWarehouseQuery(name, time.Since(start))
	}
}
