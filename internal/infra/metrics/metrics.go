// Package metrics exposes the Prometheus metrics of the API server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts handled requests by route template and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "http_requests_total",
	Help:      "Total HTTP requests.",
}, []string{"method", "route", "status"})

// HTTPLatency tracks request duration in seconds.
var HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "habitly",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

// RateLimited counts requests rejected by the rate limiter.
var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the rate limiter.",
})

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakJobs counts streak recomputations by outcome (updated, unchanged, failed).
var StreakJobs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "streak_jobs_total",
	Help:      "Streak recomputation jobs by outcome.",
}, []string{"result"})

// StreakJobsDropped counts jobs discarded because the queue was full.
var StreakJobsDropped = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "streak_jobs_dropped_total",
	Help:      "Streak jobs dropped on a full queue.",
})

// StreakQueueDepth tracks jobs waiting in the worker queue.
var StreakQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "habitly",
	Name:      "streak_queue_depth",
	Help:      "Jobs waiting in the streak worker queue.",
})

// StreakRefreshRuns counts nightly refresh runs.
var StreakRefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "streak_refresh_runs_total",
	Help:      "Scheduled streak refresh runs by outcome.",
}, []string{"result"})

// ─── Cache ──────────────────────────────────────────────────────────────────

// CacheLookups counts habit list cache lookups (hit, miss, error).
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitly",
	Name:      "cache_lookups_total",
	Help:      "Habit list cache lookups by outcome.",
}, []string{"result"})

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
