package models

import "time"

// TimeRange is an inclusive [start, end] time-of-day window.
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ElectiveConstraints are student-supplied scheduling preferences: weekdays
// to keep free and time windows to avoid. They are supplied per request and
// never mutated by the schedule builder.
type ElectiveConstraints struct {
	AvoidedDays       []string    `json:"avoided_days"`
	AvoidedTimeRanges []TimeRange `json:"avoided_time_ranges"`
}

// Empty reports whether the constraints impose no restriction.
func (c ElectiveConstraints) Empty() bool {
	return len(c.AvoidedDays) == 0 && len(c.AvoidedTimeRanges) == 0
}

// SessionState is the versioned advising-session record. It is the typed
// replacement for the coordinator's shared context dictionary: every public
// operation receives it from the store, mutates its own keys and saves it
// back with a bumped version.
type SessionState struct {
	ID              string                      `json:"id"`
	Version         int                         `json:"version"`
	StudentDetails  map[string]interface{}      `json:"student_details,omitempty"`
	SelectedCourses map[string][]CourseOffering `json:"selected_courses,omitempty"`
	Constraints     *ElectiveConstraints        `json:"constraints,omitempty"`
	FinalSchedule   map[string]CourseSchedule   `json:"final_schedule,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// StudentID extracts the student identifier from the session's student
// details, tolerating the key variants the upstream record uses.
func (s *SessionState) StudentID() string {
	if s == nil || s.StudentDetails == nil {
		return ""
	}
	for _, key := range []string{"Student_ID", "student_id"} {
		if v, ok := s.StudentDetails[key]; ok {
			if id, ok := v.(string); ok {
				return id
			}
		}
	}
	return ""
}
