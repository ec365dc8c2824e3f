package schedule

import (
	"sort"
	"strings"
)

// ParseNeededCourses aggregates the comma-separated "courses still needed"
// cells from a student's requirement rows into a deduplicated set. Cells are
// whitespace-tolerant; empty cells and the literal "nan" the warehouse emits
// for missing values are ignored.
func ParseNeededCourses(cells []string) map[string]struct{} {
	needed := make(map[string]struct{})
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" || strings.EqualFold(cell, "nan") {
			continue
		}
		for _, course := range strings.Split(cell, ",") {
			course = strings.TrimSpace(course)
			if course != "" {
				needed[course] = struct{}{}
			}
		}
	}
	return needed
}

// Intersect returns the lexicographically sorted intersection of the needed
// course set and the offered course IDs.
func Intersect(needed map[string]struct{}, offered []string) []string {
	seen := make(map[string]struct{}, len(offered))
	eligible := make([]string, 0, len(offered))
	for _, courseID := range offered {
		if courseID == "" {
			continue
		}
		if _, dup := seen[courseID]; dup {
			continue
		}
		seen[courseID] = struct{}{}
		if _, ok := needed[courseID]; ok {
			eligible = append(eligible, courseID)
		}
	}
	sort.Strings(eligible)
	return eligible
}
