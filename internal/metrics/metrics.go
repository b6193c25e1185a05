package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notification_api_http_request_duration_seconds",
			Help:    "Histogram of response durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// LedgerEvents counts committed notification transitions by event.
	LedgerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_api_ledger_events_total",
			Help: "Number of committed notification lifecycle events",
		},
		[]string{"event"},
	)

	// AuthAttempts counts logins and registrations by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_api_auth_attempts_total",
			Help: "Number of login and registration attempts",
		},
		[]string{"operation", "result"},
	)

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, RequestDuration, LedgerEvents, AuthAttempts)
	})
}
