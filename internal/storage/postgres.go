package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/models"
)

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

// NewPostgresStore creates a store over an open database handle.
func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "postgres-store"}),
	}
}

const pgUniqueViolation = "23505"

// --- Users ---

func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string, startingBalance int) (*models.User, error) {
	user := &models.User{Username: username, PasswordHash: passwordHash, CoinBalance: startingBalance}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, coin_balance) VALUES ($1, $2, $3) RETURNING id`,
		username, passwordHash, startingBalance,
	).Scan(&user.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, errors.NewUsernameTakenError(username)
		}
		return nil, errors.NewDatabaseError(err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, coin_balance FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CoinBalance)
	if err == sql.ErrNoRows {
		return nil, errors.NewUserNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, coin_balance FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CoinBalance)
	if err == sql.ErrNoRows {
		return nil, errors.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return user, nil
}

// --- Searches ---

func (s *PostgresStore) CreateSearch(ctx context.Context, userID int, data *models.SearchData) (*models.Search, []models.SearchResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, errors.NewDatabaseError(err)
	}
	defer tx.Rollback()

	search := &models.Search{
		UserID:       userID,
		Query:        data.Query,
		Source:       data.Source,
		ResultsCount: data.ResultsCount,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO searches (user_id, query, source, results_count)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		userID, data.Query, data.Source, data.ResultsCount,
	).Scan(&search.ID, &search.CreatedAt)
	if err != nil {
		return nil, nil, errors.NewDatabaseError(err)
	}

	rows := make([]models.SearchResult, 0, len(data.Results))
	for _, r := range data.Results {
		row := models.SearchResult{SearchID: search.ID, Kind: string(r.Kind)}
		switch r.Kind {
		case models.KindCandidate:
			if r.Candidate == nil {
				continue
			}
			row.Name = r.Candidate.Name
			row.Title = r.Candidate.Title
			row.URL = r.Candidate.ProfileURL
			row.MatchScore = r.Candidate.MatchScore
		case models.KindWeb:
			if r.Web == nil {
				continue
			}
			row.Title = r.Web.Title
			row.Snippet = r.Web.Snippet
			row.URL = r.Web.URL
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO search_results (search_id, kind, name, title, snippet, url, match_score)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			row.SearchID, row.Kind, row.Name, row.Title, row.Snippet, row.URL, row.MatchScore,
		).Scan(&row.ID)
		if err != nil {
			return nil, nil, errors.NewDatabaseError(err)
		}
		rows = append(rows, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, errors.NewDatabaseError(err)
	}
	return search, rows, nil
}

func (s *PostgresStore) GetSearch(ctx context.Context, id int) (*models.Search, error) {
	search := &models.Search{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, query, source, results_count, created_at FROM searches WHERE id = $1`,
		id,
	).Scan(&search.ID, &search.UserID, &search.Query, &search.Source, &search.ResultsCount, &search.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewSearchNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return search, nil
}

func (s *PostgresStore) ListSearches(ctx context.Context, userID, limit int) ([]models.Search, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, query, source, results_count, created_at
		 FROM searches WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	defer rows.Close()

	var searches []models.Search
	for rows.Next() {
		var sr models.Search
		if err := rows.Scan(&sr.ID, &sr.UserID, &sr.Query, &sr.Source, &sr.ResultsCount, &sr.CreatedAt); err != nil {
			return nil, errors.NewDatabaseError(err)
		}
		searches = append(searches, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return searches, nil
}

// --- Feedback ---

func (s *PostgresStore) CreateFeedbackWithReward(ctx context.Context, fb *models.Feedback, reward int, description string) (*models.Feedback, *models.Transaction, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, 0, errors.NewDatabaseError(err)
	}
	defer tx.Rollback()

	stored := *fb
	err = tx.QueryRowContext(ctx,
		`INSERT INTO feedback (user_id, search_id, candidate_id, good_match_elements, poor_match_elements, comment)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		fb.UserID, fb.SearchID, fb.CandidateID,
		pq.Array(fb.GoodMatchElements), pq.Array(fb.PoorMatchElements), fb.Comment,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, nil, 0, errors.NewDatabaseError(err)
	}

	entry := &models.Transaction{UserID: fb.UserID, Amount: reward, Description: description}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, amount, description) VALUES ($1, $2, $3) RETURNING id, timestamp`,
		fb.UserID, reward, description,
	).Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return nil, nil, 0, errors.NewDatabaseError(err)
	}

	var newBalance int
	err = tx.QueryRowContext(ctx,
		`UPDATE users SET coin_balance = coin_balance + $1 WHERE id = $2 RETURNING coin_balance`,
		reward, fb.UserID,
	).Scan(&newBalance)
	if err == sql.ErrNoRows {
		return nil, nil, 0, errors.NewUserNotFoundError(fb.UserID)
	}
	if err != nil {
		return nil, nil, 0, errors.NewDatabaseError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, 0, errors.NewDatabaseError(err)
	}
	return &stored, entry, newBalance, nil
}

// --- Wallet ---

func (s *PostgresStore) Credit(ctx context.Context, userID, amount int, description string) (*models.Transaction, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, errors.NewDatabaseError(err)
	}
	defer tx.Rollback()

	entry := &models.Transaction{UserID: userID, Amount: amount, Description: description}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, amount, description) VALUES ($1, $2, $3) RETURNING id, timestamp`,
		userID, amount, description,
	).Scan(&entry.ID, &entry.Timestamp)
	if err != nil {
		return nil, 0, errors.NewDatabaseError(err)
	}

	var newBalance int
	err = tx.QueryRowContext(ctx,
		`UPDATE users SET coin_balance = coin_balance + $1 WHERE id = $2 RETURNING coin_balance`,
		amount, userID,
	).Scan(&newBalance)
	if err == sql.ErrNoRows {
		return nil, 0, errors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return nil, 0, errors.NewDatabaseError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, errors.NewDatabaseError(err)
	}
	return entry, newBalance, nil
}

func (s *PostgresStore) GetBalance(ctx context.Context, userID int) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx,
		`SELECT coin_balance FROM users WHERE id = $1`, userID,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, errors.NewUserNotFoundError(userID)
	}
	if err != nil {
		return 0, errors.NewDatabaseError(err)
	}
	return balance, nil
}

func (s *PostgresStore) ListTransactions(ctx context.Context, userID, limit int) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, description, timestamp
		 FROM transactions WHERE user_id = $1 ORDER BY id DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	defer rows.Close()

	var entries []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &t.Timestamp); err != nil {
			return nil, errors.NewDatabaseError(err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	return entries, nil
}

// --- Settings ---

func (s *PostgresStore) GetSettings(ctx context.Context, userID int) (*models.Settings, error) {
	settings := &models.Settings{}
	var platformsJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, notifications, privacy_mode, auto_detect, platforms FROM settings WHERE user_id = $1`,
		userID,
	).Scan(&settings.UserID, &settings.Notifications, &settings.PrivacyMode, &settings.AutoDetect, &platformsJSON)
	if err == sql.ErrNoRows {
		return nil, errors.NewSettingsNotFoundError(userID)
	}
	if err != nil {
		return nil, errors.NewDatabaseError(err)
	}
	if err := json.Unmarshal(platformsJSON, &settings.Platforms); err != nil {
		return nil, errors.NewInternalError(fmt.Errorf("decode platforms: %w", err))
	}
	return settings, nil
}

func (s *PostgresStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	platformsJSON, err := json.Marshal(settings.Platforms)
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("encode platforms: %w", err))
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (user_id, notifications, privacy_mode, auto_detect, platforms)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   notifications = EXCLUDED.notifications,
		   privacy_mode = EXCLUDED.privacy_mode,
		   auto_detect = EXCLUDED.auto_detect,
		   platforms = EXCLUDED.platforms`,
		settings.UserID, settings.Notifications, settings.PrivacyMode, settings.AutoDetect, platformsJSON,
	)
	if err != nil {
		return errors.NewDatabaseError(err)
	}
	return nil
}
