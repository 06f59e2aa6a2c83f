// Package metrics collects and exposes Prometheus metrics for the client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records page serving and upstream API activity.
type Collector struct {
	pageRequests *prometheus.CounterVec
	pageLatency  prometheus.Histogram
	apiRequests  *prometheus.CounterVec
	apiFailures  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		pageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookbrust_page_requests_total",
			Help: "Pages served, by HTTP status code.",
		}, []string{"status_code"}),
		pageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookbrust_page_latency_seconds",
			Help:    "Page render latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookbrust_api_requests_total",
			Help: "Calls to the remote BookBrust service, by resource.",
		}, []string{"resource"}),
		apiFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookbrust_api_failures_total",
			Help: "Failed calls to the remote BookBrust service.",
		}),
	}

	reg.MustRegister(
		c.pageRequests,
		c.pageLatency,
		c.apiRequests,
		c.apiFailures,
	)

	return c
}

// RecordPage records one served page.
func (c *Collector) RecordPage(statusCode int, duration time.Duration) {
	c.pageRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.pageLatency.Observe(duration.Seconds())
}

// RecordAPICall records one call to the remote service.
func (c *Collector) RecordAPICall(resource string, err error) {
	c.apiRequests.WithLabelValues(resource).Inc()
	if err != nil {
		c.apiFailures.Inc()
	}
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
