// Package metrics holds the Prometheus collectors for HTTP traffic and the
// affiliate ledger's domain events. Label sets stay bounded: route templates,
// status codes, policy names and fixed outcome strings only.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	clicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_clicks_total",
			Help: "Visits through affiliate links by outcome (recorded, debounced, unknown_code).",
		},
		[]string{"outcome"},
	)

	limiterDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_rate_limit_decisions_total",
			Help: "Rate limiter decisions by policy and result.",
		},
		[]string{"policy", "result"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_code_cache_lookups_total",
			Help: "Code cache lookups by result (hit, miss, stale, error).",
		},
		[]string{"result"},
	)

	referrals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_referrals_total",
			Help: "Attribution attempts by outcome.",
		},
		[]string{"outcome"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_notifications_total",
			Help: "Status change notifications by kind and result.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, clicks, limiterDecisions, cacheLookups, referrals, notifications)
}

// Click outcomes
const (
	ClickRecorded    = "recorded"
	ClickDebounced   = "debounced"
	ClickUnknownCode = "unknown_code"
)

// Cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
	CacheError = "error"
)

// Referral outcomes
const (
	ReferralCreated   = "created"
	ReferralDuplicate = "duplicate"
	ReferralNoLink    = "no_link"
	ReferralFailed    = "failed"
)

func RecordClick(outcome string) {
	clicks.WithLabelValues(outcome).Inc()
}

func RecordLimiterDecision(policy string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	limiterDecisions.WithLabelValues(policy, result).Inc()
}

func RecordCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

func RecordReferral(outcome string) {
	referrals.WithLabelValues(outcome).Inc()
}

func RecordNotification(kind string, delivered bool) {
	result := "failed"
	if delivered {
		result = "delivered"
	}
	notifications.WithLabelValues(kind, result).Inc()
}

// Middleware instruments requests by method, route template and status.
// Unmatched routes fall back to the raw URL path.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
