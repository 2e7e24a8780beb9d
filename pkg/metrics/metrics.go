package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal *prometheus.CounterVec

	IconCacheHits   prometheus.Counter
	IconCacheMisses prometheus.Counter
}

// NewCollector creates a new metrics collector registered against the
// given registerer.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method, and status",
			},
			[]string{"route", "method", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"route"},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of OpenWeatherMap requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),

		IconCacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "icon_cache_hits_total",
				Help:      "Total number of icon cache hits",
			},
		),

		IconCacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "icon_cache_misses_total",
				Help:      "Total number of icon cache misses",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request
func (c *Collector) RecordHTTPRequest(route, method, status string, seconds float64) {
	c.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	c.HTTPRequestDuration.WithLabelValues(route).Observe(seconds)
}

// RecordUpstreamRequest records one OpenWeatherMap call by outcome
func (c *Collector) RecordUpstreamRequest(operation, outcome string) {
	c.UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordIconCacheHit increments the icon cache hit counter
func (c *Collector) RecordIconCacheHit() {
	c.IconCacheHits.Inc()
}

// RecordIconCacheMiss increments the icon cache miss counter
func (c *Collector) RecordIconCacheMiss() {
	c.IconCacheMisses.Inc()
}
