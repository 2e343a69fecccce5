package metrics

import (
	"strconv"
	"time"

	"filmorate/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmorate_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	LikeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_like_events_total",
			Help: "Like ledger mutations by action and whether the ledger changed",
		},
		[]string{"action", "changed"}, // action: "add", "remove"
	)

	FriendshipTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_friendship_transitions_total",
			Help: "Friendship protocol transitions by action and resulting edge status",
		},
		[]string{"action", "status", "reverse_status"},
	)
)

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordLike(action string, changed bool) {
	LikeEvents.WithLabelValues(action, strconv.FormatBool(changed)).Inc()
}

func RecordFriendshipTransition(action string, after domain.Edges) {
	FriendshipTransitions.WithLabelValues(action, statusLabel(after.Out), statusLabel(after.In)).Inc()
}

func statusLabel(s domain.FriendshipStatus) string {
	if s == domain.FriendshipAbsent {
		return "ABSENT"
	}
	return string(s)
}
