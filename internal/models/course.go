package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// RawTime carries a meeting-time value exactly as the warehouse delivered it.
// The source columns are inconsistent: the same field may arrive as an
// integer, a float, or a string such as "930.5". Coercion into a usable
// time-of-day happens once, in the schedule normalizer.
type RawTime string

// String returns the raw textual form.
func (t RawTime) String() string {
	return string(t)
}

// UnmarshalJSON accepts strings, numbers and null.
func (t *RawTime) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = RawTime(val)
	case float64:
		*t = RawTime(strconv.FormatFloat(val, 'f', -1, 64))
	default:
		*t = RawTime(fmt.Sprint(val))
	}
	return nil
}

// MarshalJSON always emits the plain string form so generic serializers
// never see an opaque numeric type.
func (t RawTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// Scan implements sql.Scanner for warehouse rows.
func (t *RawTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = RawTime(v)
	case []byte:
		*t = RawTime(v)
	case int64:
		*t = RawTime(strconv.FormatInt(v, 10))
	case float64:
		*t = RawTime(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("unsupported raw time type %T", value)
	}
	return nil
}

// CourseOffering is one section of a course as fetched from the warehouse,
// projected down to the fields the schedule builder consumes. The JSON tags
// mirror the warehouse column names the existing UI already understands.
type CourseOffering struct {
	ReferenceNumber string  `db:"course_reference_number" json:"COURSE_REFERENCE_NUMBER"`
	CourseID        string  `db:"course_id" json:"COURSE_ID"`
	ScheduleType    string  `db:"schedule_type" json:"SCHEDULE_TYPE"`
	MeetingDays     string  `db:"meeting_days" json:"MEETING_DAYS"`
	StartTime       RawTime `db:"course_start_time" json:"COURSE_START_TIME"`
	EndTime         RawTime `db:"course_end_time" json:"COURSE_END_TIME"`
}
