// Package extractor turns captured page snapshots into structured search
// data. Each supported source has a selector fallback chain tracking the
// markup variants seen in the wild; per-node failures are logged and the node
// skipped, never failing the whole pass.
package extractor

import (
	"context"
	"strings"
	"time"

	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/common/metrics"
	"recruiterpro/internal/elements"
	"recruiterpro/internal/models"
	"recruiterpro/internal/scoring"
)

// Source display names.
const (
	SourceLinkedIn     = "LinkedIn"
	SourceIndeed       = "Indeed"
	SourceZipRecruiter = "ZipRecruiter"
	SourceGoogle       = "Google"
	SourceBing         = "Bing"
	SourceDuckDuckGo   = "DuckDuckGo"
)

// Extractor coordinates source detection, record extraction, scoring and
// profile element construction for one snapshot at a time.
type Extractor struct {
	scorer scoring.Strategy
	logger logger.Logger
}

// New creates an extractor using the given scoring strategy.
func New(scorer scoring.Strategy, log logger.Logger) *Extractor {
	return &Extractor{
		scorer: scorer,
		logger: log.WithFields(map[string]interface{}{"component": "extractor"}),
	}
}

// Extract runs one extraction pass. sourceHint overrides hostname detection
// when non-empty. Returns (nil, nil) when the page yields no records.
func (e *Extractor) Extract(ctx context.Context, snap PageSnapshot, sourceHint string) (*models.SearchData, error) {
	start := time.Now()

	source := sourceHint
	if source == "" {
		source = DetectSource(snap.URL().Hostname())
	}
	if source == "" {
		e.logger.Debug("unsupported page host, skipping", map[string]interface{}{
			"host": snap.URL().Hostname(),
		})
		return nil, nil
	}

	data := &models.SearchData{Source: source}

	switch source {
	case SourceLinkedIn:
		e.extractLinkedIn(snap, data)
	case SourceIndeed:
		e.extractIndeed(snap, data)
	case SourceZipRecruiter:
		e.extractZipRecruiter(snap, data)
	case SourceGoogle, SourceBing, SourceDuckDuckGo:
		e.extractWebEngine(snap, data)
	}

	metrics.ExtractionDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())

	if len(data.Results) == 0 {
		metrics.ExtractionPasses.WithLabelValues(source, "empty").Inc()
		return nil, nil
	}
	metrics.ExtractionPasses.WithLabelValues(source, "ok").Inc()

	e.logger.Info("extraction pass completed", map[string]interface{}{
		"source":  source,
		"query":   data.Query,
		"results": len(data.Results),
	})
	return data, nil
}

// DetectSource maps a hostname to a source display name, or "".
func DetectSource(hostname string) string {
	switch {
	case strings.Contains(hostname, "linkedin.com"):
		return SourceLinkedIn
	case strings.Contains(hostname, "indeed.com"):
		return SourceIndeed
	case strings.Contains(hostname, "ziprecruiter.com"):
		return SourceZipRecruiter
	case strings.Contains(hostname, "google.com"):
		return SourceGoogle
	case strings.Contains(hostname, "bing.com"):
		return SourceBing
	case strings.Contains(hostname, "duckduckgo.com"):
		return SourceDuckDuckGo
	default:
		return ""
	}
}

// resolveQuery reads the search query from the page URL, falling back to the
// value of a search input on the page.
func resolveQuery(snap PageSnapshot, param string, inputSelectors ...string) string {
	if q := snap.URL().Query().Get(param); q != "" {
		return q
	}
	return firstAttr(asNodeRoot(snap), "value", inputSelectors...)
}

// asNodeRoot adapts a snapshot to the Node helpers.
func asNodeRoot(snap PageSnapshot) Node {
	return snapshotRoot{snap}
}

type snapshotRoot struct {
	snap PageSnapshot
}

func (r snapshotRoot) Select(selector string) []Node { return r.snap.Select(selector) }
func (r snapshotRoot) Text() string                  { return "" }
func (r snapshotRoot) Attr(string) string            { return "" }

// finishCandidate scores the candidate and derives its profile elements.
func (e *Extractor) finishCandidate(candidate *models.CandidateRecord, query string) {
	candidate.MatchScore = e.scorer.Score(candidate, query)
	candidate.ProfileElements = elements.Build(candidate)
}

// splitEmployment separates "X at Y" into position and workplace. Text
// without " at " is all position.
func splitEmployment(text string) (position, workplace string) {
	if idx := strings.Index(text, " at "); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+4:])
	}
	return strings.TrimSpace(text), ""
}
