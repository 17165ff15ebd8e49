package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// UsersTotal is the number of registered accounts, refreshed from the DB.
	UsersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Number of registered users",
		},
	)

	// WorkoutsTotal is the number of stored workout records, refreshed from the DB.
	WorkoutsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "workouts_total",
			Help: "Number of stored workout records",
		},
	)

	// WorkoutsCreatedTotal counts workout creations since process start.
	WorkoutsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "workouts_created_total",
			Help: "Total number of workouts created",
		},
	)
)

var (
	uuidPathSegment = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
	initOnce        sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, UsersTotal, WorkoutsTotal, WorkoutsCreatedTotal)
	})
}

// NormalizePath reduces label cardinality by replacing UUID path segments with {id}.
// E.g. /api/workouts/8f14e45f-... -> /api/workouts/{id}.
func NormalizePath(path string) string {
	return uuidPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncWorkoutsCreated increments the creation counter (call after a successful create).
func IncWorkoutsCreated() {
	WorkoutsCreatedTotal.Inc()
}

// SetUsersTotal updates the registered-users gauge.
func SetUsersTotal(n int) {
	UsersTotal.Set(float64(n))
}

// SetWorkoutsTotal updates the stored-workouts gauge.
func SetWorkoutsTotal(n int) {
	WorkoutsTotal.Set(float64(n))
}
