package schedule

import (
	"strings"

	"github.com/dsf-platform/advisor-api/internal/models"
)

// Allowed reports whether a section's meeting pattern satisfies the elective
// constraints. A section is rejected when it meets on an avoided weekday or
// when any of its populated day ranges overlaps an avoided time range.
// Empty constraints accept every section.
func Allowed(days models.DayRange, cons models.ElectiveConstraints) bool {
	if cons.Empty() {
		return true
	}

	avoided := make(map[string]struct{}, len(cons.AvoidedDays))
	for _, day := range cons.AvoidedDays {
		avoided[strings.ToLower(strings.TrimSpace(day))] = struct{}{}
	}

	for _, day := range models.Weekdays {
		span := days[day]
		if len(span) < 2 {
			continue
		}
		if _, hit := avoided[strings.ToLower(day)]; hit {
			return false
		}
		for _, r := range cons.AvoidedTimeRanges {
			if overlaps(span[0], span[1], r.Start, r.End) {
				return false
			}
		}
	}

	return true
}

// overlaps treats both ranges as inclusive [start, end] intervals.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 <= e2 && s2 <= e1
}
