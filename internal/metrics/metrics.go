package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Business logic metrics
	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_registrations_total",
			Help: "Total number of user registrations",
		},
	)

	emailVerificationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_email_verifications_total",
			Help: "Total number of completed email verifications",
		},
	)

	verificationResendsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_verification_resends_total",
			Help: "Total number of verification code resends",
		},
	)

	loginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Total number of user logins",
		},
	)

	loginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)

	chatRelaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_chat_relays_total",
			Help: "Total number of chat relay streams opened",
		},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordRegistration increments registration counter
func RecordRegistration() {
	registrationsTotal.Inc()
}

// RecordEmailVerification increments email verification counter
func RecordEmailVerification() {
	emailVerificationsTotal.Inc()
}

// RecordVerificationResend increments resend counter
func RecordVerificationResend() {
	verificationResendsTotal.Inc()
}

// RecordLogin increments login counter
func RecordLogin() {
	loginsTotal.Inc()
}

// RecordLoginFailed increments failed login counter
func RecordLoginFailed() {
	loginsFailed.Inc()
}

// RecordChatRelay increments chat relay counter
func RecordChatRelay() {
	chatRelaysTotal.Inc()
}

// MetricsHandler returns the Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
