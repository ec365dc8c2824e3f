package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dsf-platform/advisor-api/internal/models"
	appErrors "github.com/dsf-platform/advisor-api/pkg/errors"
)

// SessionRepository persists advising-session state in Redis as JSON.
type SessionRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *SessionRepository {
	if keyPrefix == "" {
		keyPrefix = "advisor:session:"
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{client: client, keyPrefix: keyPrefix, ttl: ttl, logger: logger}
}

// Get loads a session by ID. A missing session returns ErrCacheMiss.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.SessionState, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, r.keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}

	var state models.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return &state, nil
}

// Save stores the session state, refreshing its TTL.
func (r *SessionRepository) Save(ctx context.Context, state *models.SessionState) error {
	if r.client == nil {
		return fmt.Errorf("session store unavailable")
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", state.ID, err)
	}

	if err := r.client.Set(ctx, r.keyPrefix+state.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", state.ID, err)
	}
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
