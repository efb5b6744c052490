// Package metrics collects request metrics for the API client and exposes
// them for Prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	MetricRequestsTotal          = "wellness_client_requests_total"
	MetricRequestDurationSeconds = "wellness_client_request_duration_seconds"
)

// Recorder tracks outgoing API requests. A nil Recorder is valid and records
// nothing.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal          *prometheus.CounterVec
	requestDurationSeconds *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricRequestsTotal,
			Help: "Total API requests issued, by endpoint, method and status.",
		},
		[]string{"endpoint", "method", "status"},
	)
	r.requestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricRequestDurationSeconds,
			Help:    "API request round-trip duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	r.registry.MustRegister(r.requestsTotal, r.requestDurationSeconds)
	return r
}

// Observe records one completed request. Status 0 means the request never
// produced a response (transport failure).
func (r *Recorder) Observe(endpoint, method string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	r.requestDurationSeconds.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint handler for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
