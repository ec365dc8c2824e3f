package models

// Weekdays lists the canonical day names in week order. DayRange merging and
// presentation both iterate in this order so output stays deterministic.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayRange maps each weekday name to an optional [start, end] pair.
// A day the section does not meet holds an empty slice.
type DayRange map[string][]int

// NewDayRange returns a DayRange with every weekday present and empty.
func NewDayRange() DayRange {
	dr := make(DayRange, len(Weekdays))
	for _, day := range Weekdays {
		dr[day] = []int{}
	}
	return dr
}

// SectionRole tags a selected section's place in a course schedule.
type SectionRole string

const (
	SectionRoleLecture       SectionRole = "lecture"
	SectionRoleDiscussionLab SectionRole = "discussion_lab"
)

// ScheduleSection is one chosen section inside a course schedule entry.
type ScheduleSection struct {
	Role            SectionRole `json:"type"`
	ReferenceNumber string      `json:"crn"`
	ScheduleType    string      `json:"schedule_type"`
	Days            DayRange    `json:"days"`
}

// CourseSchedule holds the at-most-two sections selected for a course.
type CourseSchedule struct {
	CourseID string            `json:"course_id"`
	Sections []ScheduleSection `json:"sections"`
}

// LegacyCourseSchedule is the flattened display form kept for the existing
// UI: reference numbers and schedule types joined by a separator and a single
// merged day map containing only populated days.
type LegacyCourseSchedule struct {
	Name         string           `json:"Name"`
	CRN          string           `json:"CRN"`
	ScheduleType string           `json:"Schedule_Type"`
	Days         map[string][]int `json:"Days"`
}

// ScheduleSummary aggregates counts over a built schedule.
type ScheduleSummary struct {
	TotalCourses             int `json:"total_courses"`
	TotalSections            int `json:"total_sections"`
	CoursesWithLecture       int `json:"courses_with_lecture"`
	CoursesWithDiscussionLab int `json:"courses_with_discussion_lab"`
}

// BuiltSchedule is the full output of a schedule build: the detailed form,
// the legacy display form and the summary, plus one diagnostic line per
// course that had to be skipped.
type BuiltSchedule struct {
	Detailed map[string]CourseSchedule       `json:"detailed_schedule"`
	Legacy   map[string]LegacyCourseSchedule `json:"schedule"`
	Summary  ScheduleSummary                 `json:"summary"`
	Skipped  []string                        `json:"skipped,omitempty"`
}
