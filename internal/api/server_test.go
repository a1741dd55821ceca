package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recruiterpro/internal/auth"
	"recruiterpro/internal/common/config"
	"recruiterpro/internal/common/database"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/extractor"
	"recruiterpro/internal/feedback"
	"recruiterpro/internal/models"
	"recruiterpro/internal/scoring"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

// ==========================
// Test Helper Functions
// ==========================

type testEnv struct {
	server *Server
	store  *storage.MemoryStore
}

func newTestServer(t *testing.T) *testEnv {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	store := storage.NewMemoryStore()

	w := wallet.NewService(store, redisClient, log)
	sessions := auth.NewSessionStore(redisClient, time.Hour)
	authSvc := auth.NewService(store, sessions, w, 50, log)
	fbSvc := feedback.NewService(store, w, 5, log)
	ext := extractor.New(scoring.NewKeywordStrategy(), log)

	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Session.CookieName = "session_token"

	server := NewServer(cfg, Dependencies{
		Auth:      authSvc,
		Extractor: ext,
		Feedback:  fbSvc,
		Wallet:    w,
		Store:     store,
		Logger:    log,
	})

	return &testEnv{server: server, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its session token.
func (e *testEnv) register(t *testing.T, username string) string {
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := rec.Header().Get("X-Session-Token")
	require.NotEmpty(t, token)
	return token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ==========================
// Auth Endpoint Tests
// ==========================

func TestRegisterEndpoint(t *testing.T) {
	env := newTestServer(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "recruiter1",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "recruiter1", body["username"])
	assert.Equal(t, float64(50), body["coinBalance"])
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "session_token=")
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "recruiter1")

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "recruiter1",
		"password": "other456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	env := newTestServer(t)
	env.register(t, "recruiter1")

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "recruiter1",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpoint(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recruiter1", decode(t, rec)["username"])

	rec = env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==========================
// Search Endpoint Tests
// ==========================

func TestCreateSearchEndpoint_PreExtracted(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodPost, "/api/searches", token, map[string]interface{}{
		"query":  "medical assistant",
		"source": "LinkedIn",
		"results": []map[string]interface{}{
			{"kind": "candidate", "candidate": map[string]interface{}{
				"id": 1, "name": "Alexandra Gonzalez", "matchScore": 92,
			}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(1), decode(t, rec)["searchId"])
}

func TestCreateSearchEndpoint_RawCapture(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	html := `<html><body><li class="search-result">
<span class="actor-name">Jane Doe</span>
<p class="subline-level-1">Registered Nurse</p>
</li></body></html>`

	rec := env.do(t, http.MethodPost, "/api/searches", token, map[string]interface{}{
		"pageUrl": "https://www.linkedin.com/search/results/people/?keywords=nurse",
		"html":    html,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	searchID := int(decode(t, rec)["searchId"].(float64))
	search, err := env.store.GetSearch(t.Context(), searchID)
	require.NoError(t, err)
	assert.Equal(t, "nurse", search.Query)
	assert.Equal(t, "LinkedIn", search.Source)
}

func TestCreateSearchEndpoint_FetchedPage(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><li class="search-result">
<span class="actor-name">Jane Doe</span>
<p class="subline-level-1">Registered Nurse</p>
</li></body></html>`))
	}))
	defer ts.Close()

	// The test server's hostname is not a known source, so the request names
	// the source explicitly.
	rec := env.do(t, http.MethodPost, "/api/searches", token, map[string]interface{}{
		"pageUrl": ts.URL + "/search?keywords=nurse",
		"source":  "LinkedIn",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	searchID := int(decode(t, rec)["searchId"].(float64))
	search, err := env.store.GetSearch(t.Context(), searchID)
	require.NoError(t, err)
	assert.Equal(t, "nurse", search.Query)
	assert.Equal(t, "LinkedIn", search.Source)
}

func TestCreateSearchEndpoint_SchemaRejected(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	// Neither a capture nor extracted data.
	rec := env.do(t, http.MethodPost, "/api/searches", token, map[string]interface{}{
		"query": "medical assistant",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSearchEndpoint_RequiresAuth(t *testing.T) {
	env := newTestServer(t)

	rec := env.do(t, http.MethodPost, "/api/searches", "", map[string]interface{}{
		"source":  "LinkedIn",
		"results": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ==========================
// Feedback Endpoint Tests
// ==========================

func createSearch(t *testing.T, env *testEnv, token string) int {
	rec := env.do(t, http.MethodPost, "/api/searches", token, map[string]interface{}{
		"query":  "medical assistant",
		"source": "LinkedIn",
		"results": []map[string]interface{}{
			{"kind": "candidate", "candidate": map[string]interface{}{"id": 1, "name": "Alexandra Gonzalez"}},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return int(decode(t, rec)["searchId"].(float64))
}

func TestFeedbackEndpoint(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")
	searchID := createSearch(t, env, token)

	rec := env.do(t, http.MethodPost, "/api/feedback", token, map[string]interface{}{
		"searchId":          searchID,
		"candidateId":       1,
		"goodMatchElements": []string{"pos-1"},
		"comment":           "good clinical fit",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, float64(5), body["coinsAwarded"])
	assert.Equal(t, float64(55), body["newBalance"])
}

func TestFeedbackEndpoint_UnknownSearch(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodPost, "/api/feedback", token, map[string]interface{}{
		"searchId": 999,
		"comment":  "great",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackEndpoint_EmptySubmission(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")
	searchID := createSearch(t, env, token)

	rec := env.do(t, http.MethodPost, "/api/feedback", token, map[string]interface{}{
		"searchId": searchID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Wallet and Settings Tests
// ==========================

func TestWalletEndpoint(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodGet, "/api/wallet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, float64(50), body["balance"])

	transactions := body["transactions"].([]interface{})
	require.Len(t, transactions, 1)
	entry := transactions[0].(map[string]interface{})
	assert.Equal(t, "Welcome bonus", entry["description"])
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	rec := env.do(t, http.MethodGet, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["autoDetect"])

	// Partial update flips one platform and leaves the rest alone.
	rec = env.do(t, http.MethodPut, "/api/settings", token, map[string]interface{}{
		"platforms": map[string]bool{models.PlatformIndeed: false},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/settings", token, nil)
	body = decode(t, rec)
	platforms := body["platforms"].(map[string]interface{})
	assert.Equal(t, false, platforms[models.PlatformIndeed])
	assert.Equal(t, true, platforms[models.PlatformLinkedIn])
	assert.Equal(t, true, body["notifications"])
}

func TestHealthzEndpoint(t *testing.T) {
	env := newTestServer(t)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionCookieAuth(t *testing.T) {
	env := newTestServer(t)
	token := env.register(t, "recruiter1")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
