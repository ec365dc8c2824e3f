package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StudentRepository reads student requirement records from the warehouse.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CoursesStillNeeded returns the raw "courses still needed" cells for a
// student. A student can span several rows; each cell is a comma-separated
// list that the eligibility resolver aggregates. NULL cells come back as
// empty strings.
func (r *StudentRepository) CoursesStillNeeded(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT courses_still_needed FROM student_details WHERE student_id = $1`

	rows, err := r.db.QueryxContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("query courses still needed: %w", err)
	}
	defer rows.Close()

	var cells []string
	for rows.Next() {
		var cell sql.NullString
		if err := rows.Scan(&cell); err != nil {
			return nil, fmt.Errorf("scan courses still needed: %w", err)
		}
		cells = append(cells, cell.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses still needed: %w", err)
	}

	return cells, nil
}
