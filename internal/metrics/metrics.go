// Package metrics provides Prometheus collectors for the gateway:
// HTTP traffic, role-resolution fallbacks, and vote/report conflicts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "launchbay_gateway"

var (
	// HTTP metrics - track request volume and latency
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by method and path",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// RoleFallbackTotal counts role lookups that failed and fell back to
	// the least-privilege role. A rising rate means the upstream role
	// endpoint is unhealthy even though users still get (restricted) access.
	RoleFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "role",
			Name:      "fallback_total",
			Help:      "Role resolutions that fell back to least privilege after an upstream error",
		},
	)

	// VoteConflictsTotal counts votes rejected client-side or upstream as
	// duplicate or self votes.
	VoteConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "votes",
			Name:      "conflicts_total",
			Help:      "Vote attempts rejected as duplicate or self votes, by where the rejection happened",
		},
		[]string{"source"},
	)

	// GateDenialsTotal counts route-gate denials by outcome.
	GateDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "denials_total",
			Help:      "Route gate denials by redirect target",
		},
		[]string{"target"},
	)
)
