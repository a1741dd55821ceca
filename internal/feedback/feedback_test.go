package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/models"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryStore, int, int) {
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	store := storage.NewMemoryStore()
	svc := NewService(store, wallet.NewService(store, nil, log), 5, log)

	ctx := context.Background()
	user, err := store.CreateUser(ctx, "alice", "hash", 50)
	require.NoError(t, err)

	search, _, err := store.CreateSearch(ctx, user.ID, &models.SearchData{
		Query:  "medical assistant",
		Source: "LinkedIn",
		Results: []models.Result{
			models.CandidateResult(&models.CandidateRecord{ID: 1, Name: "Alexandra Gonzalez"}),
		},
	})
	require.NoError(t, err)

	return svc, store, user.ID, search.ID
}

func TestSubmit_StoresFeedbackAndPaysReward(t *testing.T) {
	svc, store, userID, searchID := newTestService(t)
	ctx := context.Background()

	result, err := svc.Submit(ctx, userID, &models.FeedbackSubmission{
		SearchID:          searchID,
		CandidateID:       1,
		GoodMatchElements: []string{"pos-1", "loc-1"},
		PoorMatchElements: []string{"edu-1"},
		Comment:           "solid clinical background",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FeedbackID)
	assert.Equal(t, 5, result.CoinsAwarded)
	assert.Equal(t, 55, result.NewBalance)

	balance, err := store.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 55, balance)

	entries, err := store.ListTransactions(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Feedback reward", entries[0].Description)
}

func TestSubmit_CommentOnlyIsAccepted(t *testing.T) {
	svc, _, userID, searchID := newTestService(t)

	result, err := svc.Submit(context.Background(), userID, &models.FeedbackSubmission{
		SearchID: searchID,
		Comment:  "not a fit for this role",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.CoinsAwarded)
}

func TestSubmit_EmptySubmissionRejected(t *testing.T) {
	svc, store, userID, searchID := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, userID, &models.FeedbackSubmission{SearchID: searchID})
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidationFailed))

	// Nothing was paid.
	balance, err := store.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
}

func TestSubmit_UnknownSearch(t *testing.T) {
	svc, store, userID, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, userID, &models.FeedbackSubmission{
		SearchID: 999,
		Comment:  "great",
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeSearchNotFound))

	balance, err := store.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 50, balance)
}
