package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request latency in seconds",
		},
		[]string{"method", "path"},
	)

	UploadsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_processed_total",
			Help: "Total number of spreadsheet uploads by outcome",
		},
		[]string{"outcome"},
	)

	UploadRowsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upload_rows_skipped_total",
			Help: "Total number of upload rows skipped with warnings",
		},
	)

	MatchBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_batches_total",
			Help: "Total number of matching batches computed",
		},
	)

	MatchPairsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_pairs_scored_total",
			Help: "Total number of (team, problem) pairs scored",
		},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "match_batch_duration_seconds",
			Help: "Duration of one matching batch in seconds",
		},
	)

	NarrativeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "narrative_failures_total",
			Help: "Total number of narrative generation failures by kind",
		},
		[]string{"kind"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits by key prefix",
		},
		[]string{"prefix"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses by key prefix",
		},
		[]string{"prefix"},
	)
)
