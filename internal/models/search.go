package models

import "time"

// ResultKind discriminates the two result shapes an extraction pass can emit.
type ResultKind string

const (
	KindCandidate ResultKind = "candidate"
	KindWeb       ResultKind = "web"
)

// WebResult is a generic search-engine hit (Google, Bing, DuckDuckGo).
type WebResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Result is a tagged union: exactly one of Candidate or Web is set,
// according to Kind.
type Result struct {
	Kind      ResultKind       `json:"kind"`
	Candidate *CandidateRecord `json:"candidate,omitempty"`
	Web       *WebResult       `json:"web,omitempty"`
}

// CandidateResult wraps a candidate record as a Result.
func CandidateResult(c *CandidateRecord) Result {
	return Result{Kind: KindCandidate, Candidate: c}
}

// WebSearchResult wraps a web hit as a Result.
func WebSearchResult(w *WebResult) Result {
	return Result{Kind: KindWeb, Web: w}
}

// SearchData is the output of one extraction pass against a page snapshot.
// Read-only after creation; results are owned by this snapshot and never
// shared across searches.
type SearchData struct {
	Query        string   `json:"query"`
	Source       string   `json:"source"`
	ResultsCount string   `json:"resultsCount,omitempty"`
	Results      []Result `json:"results"`
}

// Search is a persisted extraction pass.
type Search struct {
	ID           int       `json:"id" db:"id"`
	UserID       int       `json:"userId" db:"user_id"`
	Query        string    `json:"query" db:"query"`
	Source       string    `json:"source" db:"source"`
	ResultsCount string    `json:"resultsCount,omitempty" db:"results_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SearchResult is one persisted row of a search.
type SearchResult struct {
	ID         int    `json:"id" db:"id"`
	SearchID   int    `json:"searchId" db:"search_id"`
	Kind       string `json:"kind" db:"kind"`
	Name       string `json:"name" db:"name"`
	Title      string `json:"title,omitempty" db:"title"`
	Snippet    string `json:"snippet,omitempty" db:"snippet"`
	URL        string `json:"url,omitempty" db:"url"`
	MatchScore int    `json:"matchScore,omitempty" db:"match_score"`
}
