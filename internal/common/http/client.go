// Package http wraps the standard client with a per-request timeout so page
// fetches cannot hang a handler.
package http

import (
	"context"
	"net/http"
	"time"
)

// Client is a thin wrapper around http.Client. A zero timeout disables the
// deadline entirely, so callers should pass the configured fetch timeout.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes the request with the client's timeout.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoWithContext executes the request, cancelling it when ctx is done. The
// client timeout still applies as an upper bound.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}
