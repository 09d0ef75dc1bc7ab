package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and turns every recording call into a no-op, mirroring a disabled
// metrics config.
type Metrics struct {
	registry *prometheus.Registry

	scrapesTotal   *prometheus.CounterVec
	scrapeDuration *prometheus.HistogramVec
	refreshRuns    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New creates and registers the collectors under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scrapesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrapes_total",
			Help:      "Venue scrapes by outcome.",
		}, []string{"venue", "outcome"}),
		scrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_seconds",
			Help:      "Wall time of individual venue scrapes.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"venue"}),
		refreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Full refresh cycles by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by path and status code.",
		}, []string{"path", "code"}),
	}
	m.registry.MustRegister(m.scrapesTotal, m.scrapeDuration, m.refreshRuns, m.httpRequests)
	return m
}

// Handler serves this instance's registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveScrape records one venue scrape.
func (m *Metrics) ObserveScrape(venue, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.scrapesTotal.WithLabelValues(venue, outcome).Inc()
	m.scrapeDuration.WithLabelValues(venue).Observe(elapsed.Seconds())
}

// ObserveRefresh records one completed refresh cycle.
func (m *Metrics) ObserveRefresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshRuns.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one handled API request.
func (m *Metrics) ObserveRequest(path string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}
