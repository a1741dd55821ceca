package scoring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"recruiterpro/internal/models"
)

func TestKeywordStrategy_Score(t *testing.T) {
	tests := []struct {
		name      string
		candidate *models.CandidateRecord
		query     string
		expected  int
	}{
		{
			name:      "no query yields base score",
			candidate: &models.CandidateRecord{Title: "Medical Assistant"},
			query:     "",
			expected:  75,
		},
		{
			name: "title position and mutual connection",
			candidate: &models.CandidateRecord{
				Title:           "Medical Assistant",
				CurrentPosition: "Medical Assistant",
				ConnectionType:  models.ConnectionMutual,
			},
			query:    "medical assistant",
			expected: 75 + 8 + 8 + 6 + 6 + 5, // capped below
		},
		{
			name: "short tokens are skipped",
			candidate: &models.CandidateRecord{
				Title: "Go Engineer at ACME",
			},
			query:    "go to it",
			expected: 75,
		},
		{
			name: "duplicate tokens count once",
			candidate: &models.CandidateRecord{
				Title: "Backend Engineer",
			},
			query:    "engineer engineer engineer",
			expected: 75 + 8,
		},
		{
			name: "all field bonuses stack",
			candidate: &models.CandidateRecord{
				Title:            "Nurse",
				CurrentPosition:  "Nurse Practitioner",
				CurrentWorkplace: "Nurse Staffing Inc",
				Location:         "Nurse Town",
			},
			query:    "nurse",
			expected: 75 + 8 + 6 + 4 + 2,
		},
	}

	strategy := NewKeywordStrategy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strategy.Score(tt.candidate, tt.query)
			expected := tt.expected
			if expected > 99 {
				expected = 99
			}
			assert.Equal(t, expected, got)
		})
	}
}

func TestKeywordStrategy_WorkedExample(t *testing.T) {
	// "medical assistant" against a candidate whose title and current position
	// both read "Medical Assistant", with a mutual connection:
	// 75 + 8 (title) + 6 (position) + 5 (mutual) = 94 for "medical";
	// "assistant" adds another 8 + 6 and the total caps at 99.
	candidate := &models.CandidateRecord{
		Title:           "Medical Assistant",
		CurrentPosition: "Medical Receptionist",
		ConnectionType:  models.ConnectionMutual,
	}
	got := NewKeywordStrategy().Score(candidate, "medical")
	assert.Equal(t, 94, got)
}

func TestKeywordStrategy_NeverExceedsCap(t *testing.T) {
	candidate := &models.CandidateRecord{
		Title:            "medical assistant nurse practitioner",
		CurrentPosition:  "medical assistant nurse practitioner",
		CurrentWorkplace: "medical assistant nurse practitioner",
		Location:         "medical assistant nurse practitioner",
		ConnectionType:   models.ConnectionMutual,
	}
	got := NewKeywordStrategy().Score(candidate, "medical assistant nurse practitioner")
	assert.Equal(t, 99, got)
}

func TestRandomStrategy_StaysInRange(t *testing.T) {
	strategy := NewRandomStrategy(42)
	candidate := &models.CandidateRecord{Name: "Jane"}
	for i := 0; i < 1000; i++ {
		score := strategy.Score(candidate, "anything")
		assert.GreaterOrEqual(t, score, 75)
		assert.LessOrEqual(t, score, 99)
	}
}

func TestRandomStrategy_ConcurrentScoring(t *testing.T) {
	strategy := NewRandomStrategy(42)
	candidate := &models.CandidateRecord{Name: "Jane"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				score := strategy.Score(candidate, "anything")
				assert.GreaterOrEqual(t, score, 75)
				assert.LessOrEqual(t, score, 99)
			}
		}()
	}
	wg.Wait()
}

func TestForName(t *testing.T) {
	assert.IsType(t, &KeywordStrategy{}, ForName("keyword", 1))
	assert.IsType(t, &KeywordStrategy{}, ForName("", 1))
	assert.IsType(t, &RandomStrategy{}, ForName("random", 1))
}
