package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
	"github.com/dsf-platform/advisor-api/pkg/export"
)

// ExportFormat names a supported schedule export encoding.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportedSchedule is a rendered schedule document.
type ExportedSchedule struct {
	FileName    string
	ContentType string
	Payload     []byte
}

// ExportService renders a session's finalized schedule as CSV or PDF.
type ExportService struct {
	sessions sessionStore
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(sessions sessionStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions: sessions,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

var exportHeaders = []string{"Course", "Section", "CRN", "Schedule Type", "Meetings"}

// Export renders the finalized schedule stored on the session.
func (s *ExportService) Export(ctx context.Context, sessionID, format string) (*ExportedSchedule, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	if len(state.FinalSchedule) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no finalized schedule on session; finalize first")
	}

	data := scheduleDataset(state.FinalSchedule)

	switch strings.ToLower(format) {
	case ExportFormatCSV, "":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule csv")
		}
		return &ExportedSchedule{FileName: "schedule.csv", ContentType: "text/csv", Payload: payload}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(data, "Course Schedule")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule pdf")
		}
		return &ExportedSchedule{FileName: "schedule.pdf", ContentType: "application/pdf", Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

// scheduleDataset flattens a detailed schedule into one row per section,
// courses in sorted order so exports are reproducible.
func scheduleDataset(detailed map[string]models.CourseSchedule) export.Dataset {
	courseIDs := make([]string, 0, len(detailed))
	for courseID := range detailed {
		courseIDs = append(courseIDs, courseID)
	}
	sort.Strings(courseIDs)

	rows := make([]map[string]string, 0, len(detailed))
	for _, courseID := range courseIDs {
		for _, section := range detailed[courseID].Sections {
			rows = append(rows, map[string]string{
				"Course":        courseID,
				"Section":       string(section.Role),
				"CRN":           section.ReferenceNumber,
				"Schedule Type": section.ScheduleType,
				"Meetings":      formatMeetings(section.Days),
			})
		}
	}

	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func formatMeetings(days models.DayRange) string {
	var parts []string
	for _, day := range models.Weekdays {
		span := days[day]
		if len(span) < 2 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d-%d", day, span[0], span[1]))
	}
	return strings.Join(parts, "; ")
}
