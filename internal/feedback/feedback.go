// Package feedback accepts element-level feedback on candidates and pays the
// coin reward for it.
package feedback

import (
	"context"

	"recruiterpro/internal/common/errors"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/models"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

const rewardDescription = "Feedback reward"

// Result reports a stored submission.
type Result struct {
	FeedbackID   int `json:"feedbackId"`
	CoinsAwarded int `json:"coinsAwarded"`
	NewBalance   int `json:"newBalance"`
}

// Service validates submissions, stores them and pays the reward.
type Service struct {
	store  storage.Store
	wallet *wallet.Service
	reward int
	logger logger.Logger
}

// NewService creates the feedback service. reward is the coin amount paid per
// accepted submission.
func NewService(store storage.Store, w *wallet.Service, reward int, log logger.Logger) *Service {
	return &Service{
		store:  store,
		wallet: w,
		reward: reward,
		logger: log.WithFields(map[string]interface{}{"component": "feedback"}),
	}
}

// Submit validates and stores a submission. The feedback row, the reward
// ledger entry and the balance increment commit together; a failure in any of
// them stores nothing and pays nothing.
func (s *Service) Submit(ctx context.Context, userID int, sub *models.FeedbackSubmission) (*Result, error) {
	if sub.IsEmpty() {
		metrics.FeedbackSubmissions.WithLabelValues("rejected").Inc()
		return nil, errors.NewValidationError("feedback must include highlighted elements or a comment")
	}

	if _, err := s.store.GetSearch(ctx, sub.SearchID); err != nil {
		metrics.FeedbackSubmissions.WithLabelValues("rejected").Inc()
		return nil, err
	}

	fb := &models.Feedback{
		UserID:            userID,
		SearchID:          sub.SearchID,
		CandidateID:       sub.CandidateID,
		GoodMatchElements: sub.GoodMatchElements,
		PoorMatchElements: sub.PoorMatchElements,
		Comment:           sub.Comment,
	}

	stored, entry, balance, err := s.store.CreateFeedbackWithReward(ctx, fb, s.reward, rewardDescription)
	if err != nil {
		metrics.FeedbackSubmissions.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.FeedbackSubmissions.WithLabelValues("accepted").Inc()
	metrics.CoinsCredited.WithLabelValues(rewardDescription).Add(float64(entry.Amount))
	s.wallet.MirrorBalance(ctx, userID, balance)

	s.logger.Info("feedback stored", map[string]interface{}{
		"feedbackId": stored.ID,
		"searchId":   sub.SearchID,
		"userId":     userID,
		"reward":     entry.Amount,
	})

	return &Result{
		FeedbackID:   stored.ID,
		CoinsAwarded: entry.Amount,
		NewBalance:   balance,
	}, nil
}
