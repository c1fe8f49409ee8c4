package metrics

import (
	"net/http"
	"time"

	"catalog-insights/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records report and export activity. A disabled or nil Metrics
// accepts every call and records nothing.
type Metrics struct {
	reportsBuilt   *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	matches        *prometheus.CounterVec
	unsynced       *prometheus.GaugeVec
	fetchFailures  prometheus.Counter
	exportRuns     *prometheus.CounterVec
	catalogItems   prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the collectors on a private registry.
func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return &Metrics{}
	}

	ns := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		reportsBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "reports_built_total",
				Help:      "Total number of reports built",
			},
			[]string{"kind", "status"},
		),
		reportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "report_duration_seconds",
				Help:      "Report build duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		matches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "match_results_total",
				Help:      "Reconciliation outcomes by strategy, or by reason when unsynced",
			},
			[]string{"outcome"},
		),
		unsynced: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "unsynced_deployments",
				Help:      "Unsynced deployments found by the last unsync report",
			},
			[]string{"reason"},
		),
		fetchFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "resource_fetch_failures_total",
				Help:      "Deployments whose detailed resource fetch failed",
			},
		),
		exportRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "export_runs_total",
				Help:      "Total number of export runs",
			},
			[]string{"status"},
		),
		catalogItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "catalog_items",
				Help:      "Catalog items in the current matching index",
			},
		),
	}

	registry.MustRegister(
		m.reportsBuilt,
		m.reportDuration,
		m.matches,
		m.unsynced,
		m.fetchFailures,
		m.exportRuns,
		m.catalogItems,
	)

	return m
}

func (m *Metrics) enabled() bool {
	return m != nil && m.registry != nil
}

// Registry returns the underlying registry, nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordReport counts one report build of kind.
func (m *Metrics) RecordReport(kind string, err error, duration time.Duration) {
	if !m.enabled() {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.reportsBuilt.WithLabelValues(kind, status).Inc()
	m.reportDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordMatches counts reconciliation outcomes.
func (m *Metrics) RecordMatches(results []reconcile.MatchResult) {
	if !m.enabled() {
		return
	}
	for _, r := range results {
		if r.Matched() {
			m.matches.WithLabelValues(string(r.Strategy)).Inc()
			continue
		}
		m.matches.WithLabelValues("unsynced_" + string(r.Reason())).Inc()
	}
}

// SetUnsynced replaces the unsynced deployment gauges.
func (m *Metrics) SetUnsynced(byReason map[reconcile.UnsyncedReason]int) {
	if !m.enabled() {
		return
	}
	m.unsynced.Reset()
	for reason, n := range byReason {
		m.unsynced.WithLabelValues(string(reason)).Set(float64(n))
	}
}

// RecordFetchFailures adds n failed resource fetches.
func (m *Metrics) RecordFetchFailures(n int) {
	if !m.enabled() || n <= 0 {
		return
	}
	m.fetchFailures.Add(float64(n))
}

// RecordExport counts one export run.
func (m *Metrics) RecordExport(err error) {
	if !m.enabled() {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.exportRuns.WithLabelValues(status).Inc()
}

// SetCatalogItems records the size of the matching index.
func (m *Metrics) SetCatalogItems(n int) {
	if !m.enabled() {
		return
	}
	m.catalogItems.Set(float64(n))
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if !m.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
