// Package scoring annotates extracted candidates with a match score against
// the search query. Scores always land in [75, 99].
package scoring

import (
	"math/rand"
	"strings"
	"sync"

	"recruiterpro/internal/models"
)

const (
	baseScore = 75
	maxScore  = 99

	titleBonus     = 8
	positionBonus  = 6
	workplaceBonus = 4
	locationBonus  = 2
	mutualBonus    = 5

	minTokenLen = 3
)

// Strategy computes a match score for a candidate against a query.
type Strategy interface {
	Score(candidate *models.CandidateRecord, query string) int
}

// KeywordStrategy is the production scorer. It is deterministic: the score is
// the base plus fixed bonuses for each query token found in the candidate's
// fields, capped at the maximum.
type KeywordStrategy struct{}

// NewKeywordStrategy creates the deterministic keyword scorer.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{}
}

// Score computes the keyword match score. Tokens shorter than three
// characters are skipped and duplicate tokens count once. Each (token, field)
// pair contributes its bonus at most once.
func (s *KeywordStrategy) Score(candidate *models.CandidateRecord, query string) int {
	score := baseScore

	title := strings.ToLower(candidate.Title)
	position := strings.ToLower(candidate.CurrentPosition)
	workplace := strings.ToLower(candidate.CurrentWorkplace)
	location := strings.ToLower(candidate.Location)

	seen := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len(token) < minTokenLen || seen[token] {
			continue
		}
		seen[token] = true

		if strings.Contains(title, token) {
			score += titleBonus
		}
		if strings.Contains(position, token) {
			score += positionBonus
		}
		if strings.Contains(workplace, token) {
			score += workplaceBonus
		}
		if strings.Contains(location, token) {
			score += locationBonus
		}
	}

	if candidate.HasMutualConnection() {
		score += mutualBonus
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

// RandomStrategy returns uniform scores in [75, 99]. Useful when exercising
// the pipeline against pages where keyword relevance is meaningless. Only used
// when explicitly selected in configuration.
type RandomStrategy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomStrategy creates a random scorer seeded from the given source.
func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

// Score is safe for concurrent use; one strategy instance is shared by all
// request handlers.
func (s *RandomStrategy) Score(candidate *models.CandidateRecord, query string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return baseScore + s.rng.Intn(maxScore-baseScore+1)
}

// ForName returns the strategy registered under name, defaulting to the
// keyword scorer for unknown names.
func ForName(name string, seed int64) Strategy {
	if name == "random" {
		return NewRandomStrategy(seed)
	}
	return NewKeywordStrategy()
}
