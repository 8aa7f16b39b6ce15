package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsSubmitted counts service request submissions per catalog service.
	RequestsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangaylink_requests_submitted_total",
			Help: "Total number of service requests submitted",
		},
		[]string{"service"},
	)

	// StatusTransitions counts request status transitions by target status.
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangaylink_request_status_transitions_total",
			Help: "Total number of service request status transitions",
		},
		[]string{"status"},
	)

	// NotificationsCreated counts stored notifications by type.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangaylink_notifications_created_total",
			Help: "Total number of notifications persisted",
		},
		[]string{"type"},
	)

	// LoginAttempts records login attempts by result (success|failure).
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "barangaylink_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "barangaylink_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
