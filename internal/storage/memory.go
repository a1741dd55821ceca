package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/models"
)

// MemoryStore implements Store with mutex-protected maps. IDs are assigned
// from monotonic counters and never reused.
type MemoryStore struct {
	mu sync.Mutex

	users         map[int]*models.User
	usersByName   map[string]int
	searches      map[int]*models.Search
	searchResults map[int][]models.SearchResult
	feedback      map[int]*models.Feedback
	transactions  map[int]*models.Transaction
	settings      map[int]*models.Settings

	nextUserID        int
	nextSearchID      int
	nextResultID      int
	nextFeedbackID    int
	nextTransactionID int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:             make(map[int]*models.User),
		usersByName:       make(map[string]int),
		searches:          make(map[int]*models.Search),
		searchResults:     make(map[int][]models.SearchResult),
		feedback:          make(map[int]*models.Feedback),
		transactions:      make(map[int]*models.Transaction),
		settings:          make(map[int]*models.Settings),
		nextUserID:        1,
		nextSearchID:      1,
		nextResultID:      1,
		nextFeedbackID:    1,
		nextTransactionID: 1,
	}
}

// --- Users ---

func (m *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string, startingBalance int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usersByName[username]; exists {
		return nil, errors.NewUsernameTakenError(username)
	}

	user := &models.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CoinBalance:  startingBalance,
	}
	m.nextUserID++
	m.users[user.ID] = user
	m.usersByName[username] = user.ID

	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, errors.NewUserNotFoundError(id)
	}
	copied := *user
	return &copied, nil
}

func (m *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.usersByName[username]
	if !ok {
		return nil, errors.NewInvalidCredentialsError()
	}
	copied := *m.users[id]
	return &copied, nil
}

// --- Searches ---

func (m *MemoryStore) CreateSearch(ctx context.Context, userID int, data *models.SearchData) (*models.Search, []models.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	search := &models.Search{
		ID:           m.nextSearchID,
		UserID:       userID,
		Query:        data.Query,
		Source:       data.Source,
		ResultsCount: data.ResultsCount,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextSearchID++
	m.searches[search.ID] = search

	rows := make([]models.SearchResult, 0, len(data.Results))
	for _, r := range data.Results {
		row := models.SearchResult{ID: m.nextResultID, SearchID: search.ID, Kind: string(r.Kind)}
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
		m.nextResultID++
		rows = append(rows, row)
	}
	m.searchResults[search.ID] = rows

	copied := *search
	out := make([]models.SearchResult, len(rows))
	copy(out, rows)
	return &copied, out, nil
}

func (m *MemoryStore) GetSearch(ctx context.Context, id int) (*models.Search, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	search, ok := m.searches[id]
	if !ok {
		return nil, errors.NewSearchNotFoundError(id)
	}
	copied := *search
	return &copied, nil
}

func (m *MemoryStore) ListSearches(ctx context.Context, userID, limit int) ([]models.Search, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var searches []models.Search
	for _, s := range m.searches {
		if s.UserID == userID {
			searches = append(searches, *s)
		}
	}
	sort.Slice(searches, func(i, j int) bool { return searches[i].ID > searches[j].ID })
	if limit > 0 && len(searches) > limit {
		searches = searches[:limit]
	}
	return searches, nil
}

// --- Feedback ---

func (m *MemoryStore) CreateFeedbackWithReward(ctx context.Context, fb *models.Feedback, reward int, description string) (*models.Feedback, *models.Transaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[fb.UserID]
	if !ok {
		return nil, nil, 0, errors.NewUserNotFoundError(fb.UserID)
	}

	stored := *fb
	stored.ID = m.nextFeedbackID
	stored.CreatedAt = time.Now().UTC()
	m.nextFeedbackID++
	m.feedback[stored.ID] = &stored

	entry := &models.Transaction{
		ID:          m.nextTransactionID,
		UserID:      fb.UserID,
		Amount:      reward,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
	m.nextTransactionID++
	m.transactions[entry.ID] = entry

	user.CoinBalance += reward

	fbCopy := stored
	entryCopy := *entry
	return &fbCopy, &entryCopy, user.CoinBalance, nil
}

// --- Wallet ---

func (m *MemoryStore) Credit(ctx context.Context, userID, amount int, description string) (*models.Transaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return nil, 0, errors.NewUserNotFoundError(userID)
	}

	entry := &models.Transaction{
		ID:          m.nextTransactionID,
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now().UTC(),
	}
	m.nextTransactionID++
	m.transactions[entry.ID] = entry

	user.CoinBalance += amount

	copied := *entry
	return &copied, user.CoinBalance, nil
}

func (m *MemoryStore) GetBalance(ctx context.Context, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return 0, errors.NewUserNotFoundError(userID)
	}
	return user.CoinBalance, nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID, limit int) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var entries []models.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID {
			entries = append(entries, *t)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// --- Settings ---

func (m *MemoryStore) GetSettings(ctx context.Context, userID int) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings, ok := m.settings[userID]
	if !ok {
		return nil, errors.NewSettingsNotFoundError(userID)
	}
	copied := *settings
	copied.Platforms = make(map[string]bool, len(settings.Platforms))
	for k, v := range settings.Platforms {
		copied.Platforms[k] = v
	}
	return &copied, nil
}

func (m *MemoryStore) SaveSettings(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *settings
	copied.Platforms = make(map[string]bool, len(settings.Platforms))
	for k, v := range settings.Platforms {
		copied.Platforms[k] = v
	}
	m.settings[settings.UserID] = &copied
	return nil
}
