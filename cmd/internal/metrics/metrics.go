package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values shared by the auth counters.
const (
	ResultSuccess     = "success"
	ResultInvalid     = "invalid"
	ResultExpired     = "expired"
	ResultRevoked     = "revoked"
	ResultReused      = "reused"
	ResultInactive    = "inactive"
	ResultRateLimited = "rate_limited"
	ResultError       = "error"
)

var (
	// Logins counts login attempts by outcome.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trb_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"result"})

	// TokenRotations counts refresh-token rotations by outcome.
	TokenRotations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trb_token_rotations_total",
		Help: "Refresh-token rotation attempts by outcome.",
	}, []string{"result"})

	// ReuseDetections counts detected refresh-token reuses. Each one revokes
	// a whole token family.
	ReuseDetections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trb_token_reuse_detections_total",
		Help: "Detected refresh-token reuses.",
	})

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trb_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status class.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, route, statusClass string, elapsed time.Duration) {
	RequestDuration.WithLabelValues(method, route, statusClass).Observe(elapsed.Seconds())
}
