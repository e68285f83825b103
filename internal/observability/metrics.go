package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jadxdctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jadxdctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jadxdctl",
			Subsystem: "mockd",
			Name:      "sessions_active",
			Help:      "Sessions currently held by the mock daemon.",
		},
	)
	sessionLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jadxdctl",
			Subsystem: "mockd",
			Name:      "session_loads_total",
			Help:      "Artifact loads by outcome.",
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, sessionsActive, sessionLoads)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordSessionLoad(outcome string) {
	RegisterMetrics()
	sessionLoads.WithLabelValues(outcome).Inc()
}

func SetActiveSessions(n int) {
	RegisterMetrics()
	sessionsActive.Set(float64(n))
}
