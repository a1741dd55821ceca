package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps opaque session tokens in Redis. Tokens are random UUIDs
// and carry no claims; the stored value is the user ID.
type SessionStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

// NewSessionStore creates a session store with the given token lifetime.
func NewSessionStore(redis *database.RedisClient, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: redis, ttl: ttl}
}

// Create mints a new session for the user.
func (s *SessionStore) Create(ctx context.Context, userID int) (*models.Session, error) {
	token := uuid.NewString()
	if err := s.redis.Set(ctx, sessionKeyPrefix+token, strconv.Itoa(userID), s.ttl); err != nil {
		return nil, errors.NewInternalError(err)
	}
	metrics.SessionsCreated.Inc()

	now := time.Now().UTC()
	return &models.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

// Resolve returns the user ID behind a token. Missing or expired tokens
// resolve to an authentication error.
func (s *SessionStore) Resolve(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, errors.NewAuthRequiredError()
	}
	val, err := s.redis.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return 0, errors.NewAuthRequiredError()
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.NewAuthRequiredError()
	}
	return userID, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Del(ctx, sessionKeyPrefix+token)
}
