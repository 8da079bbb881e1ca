package router

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus instrumentation for a Router. Attach an instance
// via Router.Metrics; a nil Metrics disables instrumentation entirely.
type Metrics struct {
	matches             *prometheus.CounterVec
	trailingSlashRedirs *prometheus.CounterVec
	fixedPathRedirs     *prometheus.CounterVec
	methodNotAllowed    *prometheus.CounterVec
	notFound            *prometheus.CounterVec
	matchDuration       *prometheus.HistogramVec
}

// NewMetrics creates router metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		matches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "matches_total",
				Help:      "Total number of requests dispatched to a registered handle",
			},
			[]string{"method"},
		),
		trailingSlashRedirs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "trailing_slash_redirects_total",
				Help:      "Total number of redirects issued for a toggled trailing slash",
			},
			[]string{"method"},
		),
		fixedPathRedirs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "fixed_path_redirects_total",
				Help:      "Total number of redirects issued after case-insensitive path fixing",
			},
			[]string{"method"},
		),
		methodNotAllowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "method_not_allowed_total",
				Help:      "Total number of requests answered with 405",
			},
			[]string{"method"},
		),
		notFound: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "not_found_total",
				Help:      "Total number of requests that fell through to the not-found handler",
			},
			[]string{"method"},
		),
		matchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "routego",
				Subsystem: "router",
				Name:      "match_duration_seconds",
				Help:      "Time spent in matched handles",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observeMatch(method string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.matches.WithLabelValues(method).Inc()
	m.matchDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) observeTrailingSlashRedirect(method string) {
	if m == nil {
		return
	}
	m.trailingSlashRedirs.WithLabelValues(method).Inc()
}

func (m *Metrics) observeFixedPathRedirect(method string) {
	if m == nil {
		return
	}
	m.fixedPathRedirs.WithLabelValues(method).Inc()
}

func (m *Metrics) observeMethodNotAllowed(method string) {
	if m == nil {
		return
	}
	m.methodNotAllowed.WithLabelValues(method).Inc()
}

func (m *Metrics) observeNotFound(method string) {
	if m == nil {
		return
	}
	m.notFound.WithLabelValues(method).Inc()
}
