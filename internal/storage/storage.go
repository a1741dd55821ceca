// Package storage persists users, searches, feedback, wallet ledger entries
// and settings. Both a PostgreSQL implementation and an in-memory
// implementation are provided; the in-memory store backs tests and local
// development without a database.
package storage

import (
	"context"

	"recruiterpro/internal/models"
)

// UserStore manages registered accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns a USERNAME_TAKEN error when the
	// username is already registered.
	CreateUser(ctx context.Context, username, passwordHash string, startingBalance int) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SearchStore persists extraction passes and their result rows.
type SearchStore interface {
	// CreateSearch stores the search header and all result rows. Result rows
	// belong to exactly one search and are never shared.
	CreateSearch(ctx context.Context, userID int, data *models.SearchData) (*models.Search, []models.SearchResult, error)
	GetSearch(ctx context.Context, id int) (*models.Search, error)
	ListSearches(ctx context.Context, userID, limit int) ([]models.Search, error)
}

// FeedbackStore persists element-level feedback. The reward credit is part of
// the same operation so that a stored feedback row always has its matching
// ledger entry.
type FeedbackStore interface {
	// CreateFeedbackWithReward atomically inserts the feedback row, appends a
	// wallet transaction of amount reward, and increments the user's balance.
	// Either all three happen or none do. Returns the stored feedback, the
	// ledger entry and the new balance.
	CreateFeedbackWithReward(ctx context.Context, fb *models.Feedback, reward int, description string) (*models.Feedback, *models.Transaction, int, error)
}

// WalletStore manages the append-only coin ledger.
type WalletStore interface {
	// Credit appends a ledger entry and increments the balance in one
	// transaction. Returns the entry and the new balance.
	Credit(ctx context.Context, userID, amount int, description string) (*models.Transaction, int, error)
	GetBalance(ctx context.Context, userID int) (int, error)
	// ListTransactions returns ledger entries newest first.
	ListTransactions(ctx context.Context, userID, limit int) ([]models.Transaction, error)
}

// SettingsStore manages per-user extension settings.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID int) (*models.Settings, error)
	// SaveSettings upserts the full settings record, last write wins.
	SaveSettings(ctx context.Context, s *models.Settings) error
}

// Store aggregates all persistence concerns behind one dependency.
type Store interface {
	UserStore
	SearchStore
	FeedbackStore
	WalletStore
	SettingsStore
}
