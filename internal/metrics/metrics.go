// Package metrics exposes the application's Prometheus collectors. Collectors
// are registered on the default registry; the web server serves them on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchRequests counts search pipeline executions.
	SearchRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pawprint_search_requests_total",
		Help: "Number of search pipeline executions.",
	})

	// LadderAttempts counts fallback ladder rungs executed, labeled by rung index.
	LadderAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawprint_ladder_attempts_total",
		Help: "Fallback ladder attempts executed per rung.",
	}, []string{"rung"})

	// SafetyChecks counts annotator classifications by resulting status.
	SafetyChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawprint_safety_checks_total",
		Help: "Dog-safety classifications by status.",
	}, []string{"status"})

	// AnnotatorCache counts annotator cache lookups by result (hit or miss).
	AnnotatorCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawprint_annotator_cache_total",
		Help: "Annotator cache lookups by result.",
	}, []string{"result"})

	// UpstreamErrors counts failed upstream calls by service.
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pawprint_upstream_errors_total",
		Help: "Failed upstream API calls by service.",
	}, []string{"service"})

	// HTTPRequestDuration observes handler latency by route and status class.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pawprint_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "code"})
)
