package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	CacheHits             *prometheus.CounterVec
	CacheMisses           *prometheus.CounterVec
	UpstreamLatency       *prometheus.HistogramVec
	UpstreamErrors        *prometheus.CounterVec
	DegradedSearchesTotal prometheus.Counter
	HotelsDroppedTotal    prometheus.Counter
	RatesSkippedTotal     prometheus.Counter
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsTotal     *prometheus.CounterVec
	Registry              *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skistays_cache_hits_total",
			Help: "Cache lookups served from the store",
		}, []string{"namespace"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skistays_cache_misses_total",
			Help: "Cache lookups that invoked the producer",
		}, []string{"namespace"}),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skistays_upstream_latency_seconds",
				Help:    "Latency of calls to the hotel inventory API",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skistays_upstream_errors_total",
			Help: "Failed calls to the hotel inventory API",
		}, []string{"endpoint", "status"}),
		DegradedSearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skistays_rate_search_degraded_total",
			Help: "Rate searches answered with an empty result after an upstream failure",
		}),
		HotelsDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skistays_hotels_dropped_total",
			Help: "Priced hotels dropped because their detail lookup failed",
		}),
		RatesSkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skistays_rates_skipped_total",
			Help: "Upstream rates skipped because they could not be normalized",
		}),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Registry: reg,
	}

	reg.MustRegister(
		m.CacheHits,
		m.CacheMisses,
		m.UpstreamLatency,
		m.UpstreamErrors,
		m.DegradedSearchesTotal,
		m.HotelsDroppedTotal,
		m.RatesSkippedTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
	)

	return m
}

// NewTestMetrics returns metrics on a private registry.
func NewTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// The helpers below are nil-safe so packages can run without metrics wired.

func (m *Metrics) IncCacheHit(namespace string) {
	if m != nil {
		m.CacheHits.WithLabelValues(namespace).Inc()
	}
}

func (m *Metrics) IncCacheMiss(namespace string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(namespace).Inc()
	}
}

func (m *Metrics) ObserveUpstream(endpoint string, seconds float64) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(endpoint).Observe(seconds)
	}
}

func (m *Metrics) IncUpstreamError(endpoint, status string) {
	if m != nil {
		m.UpstreamErrors.WithLabelValues(endpoint, status).Inc()
	}
}

func (m *Metrics) IncDegradedSearch() {
	if m != nil {
		m.DegradedSearchesTotal.Inc()
	}
}

func (m *Metrics) IncHotelsDropped() {
	if m != nil {
		m.HotelsDroppedTotal.Inc()
	}
}

func (m *Metrics) AddRatesSkipped(n int) {
	if m != nil && n > 0 {
		m.RatesSkippedTotal.Add(float64(n))
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m != nil {
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
