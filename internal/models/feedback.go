package models

import "time"

// FeedbackSubmission is the payload of POST /api/feedback. A submission must
// carry at least one highlighted element or a non-empty comment.
type FeedbackSubmission struct {
	SearchID          int      `json:"searchId"`
	CandidateID       int      `json:"candidateId"`
	GoodMatchElements []string `json:"goodMatchElements"`
	PoorMatchElements []string `json:"poorMatchElements"`
	Comment           string   `json:"comment,omitempty"`
}

// IsEmpty reports whether the submission carries no useful signal.
func (s *FeedbackSubmission) IsEmpty() bool {
	return len(s.GoodMatchElements) == 0 && len(s.PoorMatchElements) == 0 && s.Comment == ""
}

// Feedback is a persisted feedback record.
type Feedback struct {
	ID                int       `json:"id" db:"id"`
	UserID            int       `json:"userId" db:"user_id"`
	SearchID          int       `json:"searchId" db:"search_id"`
	CandidateID       int       `json:"candidateId" db:"candidate_id"`
	GoodMatchElements []string  `json:"goodMatchElements" db:"good_match_elements"`
	PoorMatchElements []string  `json:"poorMatchElements" db:"poor_match_elements"`
	Comment           string    `json:"comment,omitempty" db:"comment"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
