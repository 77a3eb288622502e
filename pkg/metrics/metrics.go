package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	// Business metrics
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of booking requests by outcome",
		},
		[]string{"outcome"}, // created, validation_failed, no_drivers, error
	)

	ActiveMissionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_missions_total",
			Help: "Current number of non-terminal missions",
		},
	)

	AvailableDriversGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "available_drivers_total",
			Help: "Current number of available drivers",
		},
	)

	MissionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mission_transitions_total",
			Help: "Total number of mission status transitions",
		},
		[]string{"status"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordBooking records a booking request outcome.
func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

// RecordMissionTransition records one forward mission transition.
func RecordMissionTransition(status string) {
	MissionTransitionsTotal.WithLabelValues(status).Inc()
}
