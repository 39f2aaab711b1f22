package middleware

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NewMetrics returns the request counter and latency histogram the metrics
// middleware records into. The caller registers them on its registry.
func NewMetrics() (*prometheus.CounterVec, *prometheus.HistogramVec) {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comfortsim_requests_total",
			Help: "Number of HTTP requests handled, by path and status.",
		},
		[]string{"path", "status"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "comfortsim_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	return requests, latency
}

// MetricsMiddleware records request counts and latencies.
func MetricsMiddleware(
	requests *prometheus.CounterVec,
	latency *prometheus.HistogramVec,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start).Seconds()
			requests.WithLabelValues(r.URL.Path, http.StatusText(recorder.status)).Inc()
			latency.WithLabelValues(r.URL.Path).Observe(duration)
		})
	}
}
