package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
)

// dayCodes maps single-letter warehouse day abbreviations to weekday names.
var dayCodes = map[string]string{
	"M": "Monday",
	"T": "Tuesday",
	"W": "Wednesday",
	"R": "Thursday",
	"F": "Friday",
	"S": "Saturday",
	"U": "Sunday",
}

// ParseTimeOfDay coerces a raw warehouse time value into an integer
// time-of-day. Values arrive as "900", 930 or "930.5"; parsing goes through
// float and truncates so all three forms land on the same integer.
func ParseTimeOfDay(raw models.RawTime) (int, error) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}
	return int(f), nil
}

// NormalizeDays converts a section's day-code string and raw start/end times
// into a DayRange. Day tokens are comma-separated single letters; unknown
// tokens are ignored. A time that fails to coerce, or a range with start
// after end, leaves that day empty and does not abort the remaining days.
func NormalizeDays(offering models.CourseOffering, logger *zap.Logger) models.DayRange {
	if logger == nil {
		logger = zap.NewNop()
	}
	days := models.NewDayRange()

	for _, token := range strings.Split(offering.MeetingDays, ",") {
		name, ok := dayCodes[strings.ToUpper(strings.TrimSpace(token))]
		if !ok {
			continue
		}

		start, startErr := ParseTimeOfDay(offering.StartTime)
		end, endErr := ParseTimeOfDay(offering.EndTime)
		if startErr != nil || endErr != nil {
			logger.Warn("time coercion failed",
				zap.String("crn", offering.ReferenceNumber),
				zap.String("day", name),
				zap.NamedError("start_error", startErr),
				zap.NamedError("end_error", endErr))
			continue
		}
		if start > end {
			logger.Warn("inverted time range dropped",
				zap.String("crn", offering.ReferenceNumber),
				zap.String("day", name),
				zap.Int("start", start),
				zap.Int("end", end))
			continue
		}

		days[name] = []int{start, end}
	}

	return days
}
