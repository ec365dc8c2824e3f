// Package schedule implements the section-selection and schedule-assembly
// algorithm: classifying raw warehouse sections, normalizing their meeting
// days and times, applying elective constraints and assembling a
// conflict-aware weekly schedule per course. Everything in this package is
// pure computation over in-memory records; fetching and persistence live in
// the repository layer.
package schedule

import "strings"

// SectionClass is the classification of a section derived from its
// schedule-type code.
type SectionClass int

const (
	ClassOther SectionClass = iota
	ClassLecture
	ClassDiscussionLab
)

var (
	lectureMarkers       = []string{"LEC", "LECTURE", "L"}
	discussionLabMarkers = []string{"DIS", "DISCUSSION", "LAB", "LABORATORY", "D", "REC", "RECITATION"}
)

// Classify buckets a schedule-type code into lecture, discussion/lab or
// other. The code is trimmed and uppercased, then matched by substring
// containment. The lecture check runs first, so a code matching both marker
// families classifies as a lecture. Empty codes classify as other.
func Classify(scheduleType string) SectionClass {
	code := strings.ToUpper(strings.TrimSpace(scheduleType))
	if code == "" {
		return ClassOther
	}
	if containsAny(code, lectureMarkers) {
		return ClassLecture
	}
	if containsAny(code, discussionLabMarkers) {
		return ClassDiscussionLab
	}
	return ClassOther
}

func containsAny(code string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(code, marker) {
			return true
		}
	}
	return false
}
