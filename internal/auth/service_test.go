package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestService(t *testing.T) (*Service, *storage.MemoryStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	store := storage.NewMemoryStore()
	w := wallet.NewService(store, redisClient, log)
	sessions := NewSessionStore(redisClient, time.Hour)

	return NewService(store, sessions, w, 50, log), store, mr
}

// ==========================
// Registration Tests
// ==========================

func TestRegister_CreatesUserWithWelcomeBonusAndSettings(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	user, session, err := svc.Register(ctx, "recruiter1", "secret123")
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.Equal(t, "recruiter1", user.Username)
	assert.Equal(t, 50, user.CoinBalance)
	assert.NotEmpty(t, session.Token)

	// Welcome bonus shows up in the ledger.
	entries, err := store.ListTransactions(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Amount)
	assert.Equal(t, "Welcome bonus", entries[0].Description)

	// Default settings are stored.
	settings, err := store.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, settings.AutoDetect)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "ab", "secret123")
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidationFailed))

	_, _, err = svc.Register(ctx, "alice", "short")
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidationFailed))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "alice", "different456")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUsernameTaken))
}

// ==========================
// Login and Session Tests
// ==========================

func TestLogin_RoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	user, session, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	current, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, current.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice", "wrongpass")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))

	_, _, err = svc.Login(ctx, "nobody", "secret123")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, session, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.CurrentUser(ctx, session.Token)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthRequired))
}

func TestSessionStore_ExpiredToken(t *testing.T) {
	svc, _, mr := newTestService(t)
	ctx := context.Background()

	_, session, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.CurrentUser(ctx, session.Token)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthRequired))
}

func TestSessionStore_EmptyToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CurrentUser(context.Background(), "")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuthRequired))
}
