package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	UpstreamDuration    *prometheus.HistogramVec
	UpstreamErrors      *prometheus.CounterVec
	Extractions         *prometheus.CounterVec
	RateLimited         prometheus.Counter
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by resource kind and result.",
			},
			[]string{"kind", "result"}, // result: hit, miss, error
		),
		UpstreamDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_fetch_duration_seconds",
				Help:    "Duration of upstream page fetches.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"kind"},
		),
		UpstreamErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upstream_errors_total",
				Help: "Failed upstream fetches and extractions.",
			},
			[]string{"kind", "error_type"},
		),
		Extractions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractions_total",
				Help: "Extractor runs by resource kind and outcome.",
			},
			[]string{"kind", "status"}, // status: success, failure
		),
		RateLimited: f.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limited_total",
				Help: "Requests rejected by the rate limiter.",
			},
		),
	}
}

func (m *Metrics) ObserveCacheLookup(kind, result string) {
	m.CacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveUpstream(kind string, seconds float64) {
	m.UpstreamDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) IncUpstreamErrors(kind, errorType string) {
	m.UpstreamErrors.WithLabelValues(kind, errorType).Inc()
}

func (m *Metrics) IncExtractions(kind, status string) {
	m.Extractions.WithLabelValues(kind, status).Inc()
}
