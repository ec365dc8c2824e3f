package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
)

// sessionStore abstracts persistence of advising-session state.
type sessionStore interface {
	Get(ctx context.Context, id string) (*models.SessionState, error)
	Save(ctx context.Context, state *models.SessionState) error
	Delete(ctx context.Context, id string) error
}

// CreateSessionRequest seeds a new advising session.
type CreateSessionRequest struct {
	StudentDetails map[string]interface{} `json:"student_details"`
}

// SetConstraintsRequest stores elective constraints on a session.
type SetConstraintsRequest struct {
	AvoidedDays       []string           `json:"avoided_days"`
	AvoidedTimeRanges []models.TimeRange `json:"avoided_time_ranges"`
}

// SessionService manages advising-session lifecycle and constraint storage.
type SessionService struct {
	store     sessionStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs SessionService.
func NewSessionService(store sessionStore, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, validator: validate, logger: logger}
}

// Create starts a new session, optionally seeded with student details.
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*models.SessionState, error) {
	now := time.Now().UTC()
	state := &models.SessionState{
		ID:             uuid.NewString(),
		Version:        1,
		StudentDetails: req.StudentDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	s.logger.Info("session created", zap.String("session_id", state.ID))
	return state, nil
}

// Get loads a session by ID.
func (s *SessionService) Get(ctx context.Context, id string) (*models.SessionState, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingIdentifier, "session ID is required")
	}
	state, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return state, nil
}

// SetConstraints validates and stores elective constraints on the session.
// Day names are canonicalized to their weekday spelling; ranges must not be
// inverted.
func (s *SessionService) SetConstraints(ctx context.Context, id string, req SetConstraintsRequest) (*models.SessionState, error) {
	state, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	days := make([]string, 0, len(req.AvoidedDays))
	for _, day := range req.AvoidedDays {
		canonical, ok := canonicalWeekday(day)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown weekday: "+day)
		}
		days = append(days, canonical)
	}
	for _, r := range req.AvoidedTimeRanges {
		if r.Start > r.End {
			return nil, appErrors.Clone(appErrors.ErrValidation, "avoided time range start must not exceed end")
		}
	}

	state.Constraints = &models.ElectiveConstraints{
		AvoidedDays:       days,
		AvoidedTimeRanges: req.AvoidedTimeRanges,
	}
	if err := s.save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Delete removes a session. Deleting a session that does not exist is not an
// error; the store drops it either way.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrMissingIdentifier, "session ID is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// save bumps the session version and persists it.
func (s *SessionService) save(ctx context.Context, state *models.SessionState) error {
	state.Version++
	state.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, state); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return nil
}

func canonicalWeekday(raw string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, day := range models.Weekdays {
		if strings.ToLower(day) == needle {
			return day, true
		}
	}
	return "", false
}
