package extractor

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"recruiterpro/internal/common/http"
	"recruiterpro/internal/models"
)

// Fetcher downloads live pages into snapshots.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with a per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: http.NewClient(timeout)}
}

// Fetch downloads pageURL and parses it into a snapshot.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (PageSnapshot, error) {
	req, err := nethttp.NewRequest(nethttp.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	return NewSnapshot(resp.Body, pageURL)
}

// RetryOptions bounds the observe-and-rescan loop. Dynamic pages often render
// their result list after the initial load, so an empty first pass is retried
// a few times before giving up.
type RetryOptions struct {
	Delay       time.Duration
	MaxAttempts int
}

// ExtractWithRetry runs extraction passes against freshly fetched snapshots
// until one yields data or the attempt budget is spent. Returns (nil, nil)
// when every pass came up empty.
func (e *Extractor) ExtractWithRetry(ctx context.Context, fetch func(context.Context) (PageSnapshot, error), sourceHint string, opts RetryOptions) (*SearchDataResult, error) {
	attempts := opts.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		snap, err := fetch(ctx)
		if err != nil {
			lastErr = err
			e.logger.Warn("snapshot fetch failed", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
		} else {
			data, err := e.Extract(ctx, snap, sourceHint)
			if err != nil {
				return nil, err
			}
			if data != nil {
				return &SearchDataResult{Data: data, Attempts: attempt}, nil
			}
		}

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.Delay):
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all %d extraction attempts failed: %w", attempts, lastErr)
	}
	return nil, nil
}

// SearchDataResult pairs extracted data with the attempt count that produced
// it.
type SearchDataResult struct {
	Data     *models.SearchData
	Attempts int
}
