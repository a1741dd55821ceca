package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/storage"
)

func newTestWallet(t *testing.T) (*Service, *storage.MemoryStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	store := storage.NewMemoryStore()
	return NewService(store, redisClient, logger.NewZapAdapter(zaptest.NewLogger(t))), store, mr
}

func TestCredit_UpdatesLedgerAndMirror(t *testing.T) {
	svc, store, mr := newTestWallet(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", "hash", 0)
	require.NoError(t, err)

	entry, balance, err := svc.Credit(ctx, user.ID, 50, "Welcome bonus")
	require.NoError(t, err)
	assert.Equal(t, 50, entry.Amount)
	assert.Equal(t, 50, balance)

	// Mirror key is refreshed.
	val, err := mr.Get("wallet_balance:1")
	require.NoError(t, err)
	assert.Equal(t, "50", val)

	mirror, ok := svc.MirroredBalance(ctx, user.ID)
	assert.True(t, ok)
	assert.Equal(t, 50, mirror)
}

func TestCredit_UnknownUser(t *testing.T) {
	svc, _, _ := newTestWallet(t)

	_, _, err := svc.Credit(context.Background(), 99, 5, "Feedback reward")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserNotFound))
}

func TestCredit_SurvivesMirrorOutage(t *testing.T) {
	svc, store, mr := newTestWallet(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", "hash", 0)
	require.NoError(t, err)

	mr.Close()

	// Ledger commit still succeeds when the mirror is down.
	_, balance, err := svc.Credit(ctx, user.ID, 5, "Feedback reward")
	require.NoError(t, err)
	assert.Equal(t, 5, balance)

	_, ok := svc.MirroredBalance(ctx, user.ID)
	assert.False(t, ok)
}

func TestBalanceAndTransactions(t *testing.T) {
	svc, store, _ := newTestWallet(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "alice", "hash", 0)
	require.NoError(t, err)

	_, _, err = svc.Credit(ctx, user.ID, 50, "Welcome bonus")
	require.NoError(t, err)
	_, _, err = svc.Credit(ctx, user.ID, 5, "Feedback reward")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, balance)

	entries, err := svc.Transactions(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Feedback reward", entries[0].Description)
}

func TestMirrorBalance_WritesExpectedKey(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	store := storage.NewMemoryStore()
	svc := NewService(store, &database.RedisClient{Client: redisClient}, logger.NewNoOpLogger())

	redisMock.ExpectSet("wallet_balance:7", "42", 24*time.Hour).SetVal("OK")

	svc.MirrorBalance(context.Background(), 7, 42)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestMirroredBalance_NoRedis(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(store, nil, logger.NewNoOpLogger())

	_, ok := svc.MirroredBalance(context.Background(), 1)
	assert.False(t, ok)
}
