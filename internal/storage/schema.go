package storage

import (
	"context"

	"recruiterpro/internal/common/database"
)

// Schema holds the DDL for all tables. Statements are idempotent so the
// server can apply them at startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		coin_balance INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS searches (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		query TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL,
		results_count TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS search_results (
		id SERIAL PRIMARY KEY,
		search_id INTEGER NOT NULL REFERENCES searches(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		snippet TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		match_score INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		search_id INTEGER NOT NULL REFERENCES searches(id),
		candidate_id INTEGER NOT NULL DEFAULT 0,
		good_match_elements TEXT[] NOT NULL DEFAULT '{}',
		poor_match_elements TEXT[] NOT NULL DEFAULT '{}',
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		amount INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		user_id INTEGER PRIMARY KEY REFERENCES users(id),
		notifications BOOLEAN NOT NULL DEFAULT TRUE,
		privacy_mode BOOLEAN NOT NULL DEFAULT TRUE,
		auto_detect BOOLEAN NOT NULL DEFAULT TRUE,
		platforms JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_searches_user ON searches(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_search ON feedback(search_id)`,
}

// EnsureSchema creates all tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pg *database.PostgresClient) error {
	for _, stmt := range schemaStatements {
		if _, err := pg.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
