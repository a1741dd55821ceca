// Package wallet manages coin balances. The PostgreSQL ledger is the source
// of truth; Redis carries a non-authoritative balance mirror for cheap reads
// by the extension popup.
package wallet

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/models"
	"recruiterpro/internal/storage"
)

const mirrorTTL = 24 * time.Hour

// Service wraps the wallet store with the Redis mirror and metrics.
type Service struct {
	store  storage.WalletStore
	redis  *database.RedisClient
	logger logger.Logger
}

// NewService creates the wallet service. redis may be nil, which disables the
// mirror.
func NewService(store storage.WalletStore, redis *database.RedisClient, log logger.Logger) *Service {
	return &Service{
		store:  store,
		redis:  redis,
		logger: log.WithFields(map[string]interface{}{"component": "wallet"}),
	}
}

// Credit appends a ledger entry and increments the balance atomically, then
// refreshes the mirror.
func (s *Service) Credit(ctx context.Context, userID, amount int, description string) (*models.Transaction, int, error) {
	entry, balance, err := s.store.Credit(ctx, userID, amount, description)
	if err != nil {
		return nil, 0, err
	}

	metrics.CoinsCredited.WithLabelValues(description).Add(float64(amount))
	s.MirrorBalance(ctx, userID, balance)

	s.logger.Info("wallet credited", map[string]interface{}{
		"userId":     userID,
		"amount":     amount,
		"newBalance": balance,
	})
	return entry, balance, nil
}

// Balance reads the authoritative balance.
func (s *Service) Balance(ctx context.Context, userID int) (int, error) {
	return s.store.GetBalance(ctx, userID)
}

// Transactions lists ledger entries newest first.
func (s *Service) Transactions(ctx context.Context, userID, limit int) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID, limit)
}

// MirrorBalance writes the balance mirror. Mirror failures are logged and
// swallowed; the ledger already committed.
func (s *Service) MirrorBalance(ctx context.Context, userID, balance int) {
	if s.redis == nil {
		return
	}
	key := mirrorKey(userID)
	if err := s.redis.Set(ctx, key, strconv.Itoa(balance), mirrorTTL); err != nil {
		s.logger.Warn("balance mirror update failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}

// MirroredBalance reads the mirror. The boolean reports whether a mirror
// value was present.
func (s *Service) MirroredBalance(ctx context.Context, userID int) (int, bool) {
	if s.redis == nil {
		return 0, false
	}
	val, err := s.redis.Get(ctx, mirrorKey(userID))
	if err != nil {
		return 0, false
	}
	balance, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return balance, true
}

func mirrorKey(userID int) string {
	return fmt.Sprintf("wallet_balance:%d", userID)
}
