// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_passes_total",
			Help: "Total number of extraction passes by source",
		},
		[]string{"source", "outcome"},
	)

	ExtractionRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_records_skipped_total",
			Help: "Total number of page nodes skipped due to extraction failures",
		},
		[]string{"source"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "extraction_duration_seconds",
			Help: "Duration of extraction passes in seconds",
		},
		[]string{"source"},
	)

	FeedbackSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total number of feedback submissions by outcome",
		},
		[]string{"outcome"},
	)

	CoinsCredited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_coins_credited_total",
			Help: "Total coins credited to wallets by reason",
		},
		[]string{"reason"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Number of sessions created since startup",
		},
	)
)
