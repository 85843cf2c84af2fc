// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelstate_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelstate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ProgressSaves counts save attempts by outcome: upserted, skipped or
	// failed.
	ProgressSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelstate_progress_saves_total",
			Help: "Total number of progress saves by outcome",
		},
		[]string{"media_type", "outcome"},
	)

	Reactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelstate_reactions_total",
			Help: "Total number of reactions by entity kind and direction",
		},
		[]string{"kind", "direction"},
	)

	Reports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelstate_reports_total",
			Help: "Total number of reports by entity kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	SessionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelstate_session_cache_hits_total",
			Help: "Total number of auth session cache hits",
		},
	)

	SessionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelstate_session_cache_misses_total",
			Help: "Total number of auth session cache misses",
		},
	)

	EmitterSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelstate_emitter_saves_total",
			Help: "Total number of client progress emits by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest observes one finished request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordProgressSave(mediaType, outcome string) {
	ProgressSaves.WithLabelValues(mediaType, outcome).Inc()
}

func RecordReaction(kind, direction string) {
	Reactions.WithLabelValues(kind, direction).Inc()
}

func RecordReport(kind, outcome string) {
	Reports.WithLabelValues(kind, outcome).Inc()
}
