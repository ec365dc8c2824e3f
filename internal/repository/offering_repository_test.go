package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsf-platform/advisor-api/internal/models"
)

func TestOfferingRepositoryOfferedCourseIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	rows := sqlmock.NewRows([]string{"course_id"}).
		AddRow("BIO220").
		AddRow("CS101")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT course_id FROM course_offerings WHERE course_id IS NOT NULL ORDER BY course_id")).
		WillReturnRows(rows)

	courseIDs, err := repo.OfferedCourseIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BIO220", "CS101"}, courseIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferingRepositorySectionsByCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	rows := sqlmock.NewRows([]string{"course_reference_number", "course_id", "schedule_type", "meeting_days", "course_start_time", "course_end_time"}).
		AddRow("111", "CS101", "LEC", "M,W", "900", "950").
		AddRow("112", "CS101", "DIS", "F", "1000.0", "1050")
	mock.ExpectQuery("SELECT o.course_reference_number").
		WithArgs("CS101").
		WillReturnRows(rows)

	sections, err := repo.SectionsByCourse(context.Background(), "CS101")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "111", sections[0].ReferenceNumber)
	assert.Equal(t, "LEC", sections[0].ScheduleType)
	assert.Equal(t, models.RawTime("1000.0"), sections[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferingRepositorySectionsByCourseEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	mock.ExpectQuery("SELECT o.course_reference_number").
		WithArgs("CS999").
		WillReturnRows(sqlmock.NewRows([]string{"course_reference_number", "course_id", "schedule_type", "meeting_days", "course_start_time", "course_end_time"}))

	sections, err := repo.SectionsByCourse(context.Background(), "CS999")
	require.NoError(t, err)
	assert.Empty(t, sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}
