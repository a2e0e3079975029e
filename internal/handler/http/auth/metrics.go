package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts auth endpoint calls by operation (token, signup, me) and result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by operation and result",
		},
		[]string{"operation", "result"},
	)

	// bcrypt の比較が支配的なため 10ms 以上のバケットを厚めに取る
	authDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Authentication duration by operation",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Authorization check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// unauthorizedAttempts counts rejected bearer tokens by reason.
	unauthorizedAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unauthorized_attempts_total",
			Help: "Rejected requests to protected endpoints by reason",
		},
		[]string{"reason"},
	)
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// RecordAuthRequest records one auth endpoint call.
func RecordAuthRequest(operation, result string) {
	authRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordAuthDuration records auth endpoint latency.
func RecordAuthDuration(operation string, durationSeconds float64) {
	authDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// RecordAuthzCheckDuration records bearer token verification latency.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordUnauthorized records a rejected request to a protected endpoint.
func RecordUnauthorized(reason string) {
	unauthorizedAttempts.WithLabelValues(reason).Inc()
}
