package schedule

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
)

// DefaultSeparator joins reference numbers and schedule types in the legacy
// view.
const DefaultSeparator = "/"

// candidate pairs an offering with its classification and normalized days so
// each section is normalized exactly once per build.
type candidate struct {
	offering models.CourseOffering
	class    SectionClass
	days     models.DayRange
}

// Builder assembles a weekly schedule from the sections a student selected.
// It holds no per-request state; one Builder serves all requests.
type Builder struct {
	separator        string
	applyConstraints bool
	logger           *zap.Logger
}

// NewBuilder constructs a Builder. applyConstraints controls whether
// elective constraints filter candidates before ranking.
func NewBuilder(separator string, applyConstraints bool, logger *zap.Logger) *Builder {
	if separator == "" {
		separator = DefaultSeparator
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{separator: separator, applyConstraints: applyConstraints, logger: logger}
}

// Build produces the detailed schedule, the legacy display view and the
// summary for the given per-course section lists. Courses are processed in
// sorted ID order so repeated builds over identical input are byte-identical.
// A course whose sections are all missing or filtered out is skipped with a
// diagnostic; it never aborts the batch.
func (b *Builder) Build(selected map[string][]models.CourseOffering, cons models.ElectiveConstraints) *models.BuiltSchedule {
	built := &models.BuiltSchedule{
		Detailed: make(map[string]models.CourseSchedule, len(selected)),
		Legacy:   make(map[string]models.LegacyCourseSchedule, len(selected)),
	}

	courseIDs := make([]string, 0, len(selected))
	for courseID := range selected {
		courseIDs = append(courseIDs, courseID)
	}
	sort.Strings(courseIDs)

	for _, courseID := range courseIDs {
		sections := selected[courseID]
		if len(sections) == 0 {
			b.skip(built, courseID, "no candidate sections")
			continue
		}

		lecture, discussion := b.selectSections(courseID, sections, cons)
		if lecture == nil && discussion == nil {
			b.skip(built, courseID, "no section satisfies the constraints")
			continue
		}

		entry := models.CourseSchedule{CourseID: courseID}
		if lecture != nil {
			entry.Sections = append(entry.Sections, models.ScheduleSection{
				Role:            models.SectionRoleLecture,
				ReferenceNumber: lecture.offering.ReferenceNumber,
				ScheduleType:    lecture.offering.ScheduleType,
				Days:            lecture.days,
			})
		}
		if discussion != nil {
			entry.Sections = append(entry.Sections, models.ScheduleSection{
				Role:            models.SectionRoleDiscussionLab,
				ReferenceNumber: discussion.offering.ReferenceNumber,
				ScheduleType:    discussion.offering.ScheduleType,
				Days:            discussion.days,
			})
		}

		built.Detailed[courseID] = entry
		built.Legacy[courseID] = b.legacyEntry(entry)
	}

	built.Summary = summarize(built.Detailed)
	return built
}

// selectSections partitions a course's candidates by classification,
// preserving input order, and picks at most one lecture and one
// discussion/lab. Constraint filtering is an explicit step applied before
// ranking. A course with no classified lecture falls back to the first
// unclassified section in the lecture role. Both picks are independent.
func (b *Builder) selectSections(courseID string, sections []models.CourseOffering, cons models.ElectiveConstraints) (lecture, discussion *candidate) {
	var lectures, discussions, others []candidate

	for _, section := range sections {
		cand := candidate{
			offering: section,
			class:    Classify(section.ScheduleType),
			days:     NormalizeDays(section, b.logger),
		}
		if b.applyConstraints && !Allowed(cand.days, cons) {
			b.logger.Debug("section rejected by constraints",
				zap.String("course_id", courseID),
				zap.String("crn", section.ReferenceNumber))
			continue
		}
		switch cand.class {
		case ClassLecture:
			lectures = append(lectures, cand)
		case ClassDiscussionLab:
			discussions = append(discussions, cand)
		default:
			others = append(others, cand)
		}
	}

	if len(lectures) > 0 {
		lecture = &lectures[0]
	} else if len(others) > 0 {
		lecture = &others[0]
	}
	if len(discussions) > 0 {
		discussion = &discussions[0]
	}
	return lecture, discussion
}

// legacyEntry flattens a course's selected sections into the display form:
// joined reference numbers and schedule types, and a single day map where
// the first populated range per weekday wins, in section order.
func (b *Builder) legacyEntry(entry models.CourseSchedule) models.LegacyCourseSchedule {
	var crns, types []string
	combined := make(map[string][]int)

	for _, section := range entry.Sections {
		if section.ReferenceNumber != "" {
			crns = append(crns, section.ReferenceNumber)
		}
		if section.ScheduleType != "" {
			types = append(types, section.ScheduleType)
		}
		for _, day := range models.Weekdays {
			span := section.Days[day]
			if len(span) < 2 {
				continue
			}
			if _, taken := combined[day]; !taken {
				combined[day] = span
			}
		}
	}

	return models.LegacyCourseSchedule{
		Name:         entry.CourseID,
		CRN:          strings.Join(crns, b.separator),
		ScheduleType: strings.Join(types, b.separator),
		Days:         combined,
	}
}

func (b *Builder) skip(built *models.BuiltSchedule, courseID, reason string) {
	b.logger.Warn("course skipped", zap.String("course_id", courseID), zap.String("reason", reason))
	built.Skipped = append(built.Skipped, fmt.Sprintf("%s: %s", courseID, reason))
}

func summarize(detailed map[string]models.CourseSchedule) models.ScheduleSummary {
	summary := models.ScheduleSummary{TotalCourses: len(detailed)}
	for _, course := range detailed {
		summary.TotalSections += len(course.Sections)
		for _, section := range course.Sections {
			switch section.Role {
			case models.SectionRoleLecture:
				summary.CoursesWithLecture++
			case models.SectionRoleDiscussionLab:
				summary.CoursesWithDiscussionLab++
			}
		}
	}
	return summary
}
