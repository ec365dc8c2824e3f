package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dsf-platform/advisor-api/internal/models"
)

// OfferingRepository reads course offerings and their meeting patterns from
// the warehouse.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository creates a new offering repository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

// OfferedCourseIDs returns the distinct course IDs offered next term.
func (r *OfferingRepository) OfferedCourseIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT course_id FROM course_offerings WHERE course_id IS NOT NULL ORDER BY course_id`

	var courseIDs []string
	if err := r.db.SelectContext(ctx, &courseIDs, query); err != nil {
		return nil, fmt.Errorf("list offered course ids: %w", err)
	}
	return courseIDs, nil
}

// SectionsByCourse returns every section of a course joined with its meeting
// pattern, projected to the fields the schedule builder consumes. Times are
// selected as text because the warehouse stores them inconsistently; the
// normalizer coerces them once downstream.
func (r *OfferingRepository) SectionsByCourse(ctx context.Context, courseID string) ([]models.CourseOffering, error) {
	const query = `SELECT o.course_reference_number,
		o.course_id,
		COALESCE(o.schedule_type, '') AS schedule_type,
		COALESCE(m.meeting_days, '') AS meeting_days,
		COALESCE(m.course_start_time::text, '') AS course_start_time,
		COALESCE(m.course_end_time::text, '') AS course_end_time
		FROM course_offerings o
		LEFT JOIN course_meetings m ON m.course_reference_number = o.course_reference_number
		WHERE o.course_id = $1
		ORDER BY o.course_reference_number`

	var sections []models.CourseOffering
	if err := r.db.SelectContext(ctx, &sections, query, courseID); err != nil {
		return nil, fmt.Errorf("list sections for %s: %w", courseID, err)
	}
	return sections, nil
}
