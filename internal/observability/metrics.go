package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report-generation pipeline.
type Metrics struct {
	ReportsGenerated *prometheus.CounterVec // labels: category={Seismic,Volcanic}
	ParseErrors      prometheus.Counter
	GenerateErrors   prometheus.Counter

	// DegradedSections counts hazard sections omitted from a report
	// because of a missing rule key or malformed special case.
	DegradedSections *prometheus.CounterVec // labels: hazard

	ReportSections   prometheus.Histogram
	GenerateDuration prometheus.Histogram
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "har",
			Name:      "reports_generated_total",
			Help:      "Total hazard assessment reports generated, by category.",
		}, []string{"category"}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "har",
			Name:      "parse_errors_total",
			Help:      "Total inputs rejected by the summary-table parser.",
		}),
		GenerateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "har",
			Name:      "generate_errors_total",
			Help:      "Total report-generation failures.",
		}),
		DegradedSections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "har",
			Name:      "degraded_sections_total",
			Help:      "Hazard sections omitted due to rulebook lookup failures, by hazard.",
		}, []string{"hazard"}),
		ReportSections: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "har",
			Name:      "report_sections",
			Help:      "Number of hazard sections per generated report.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "har",
			Name:      "generate_duration_seconds",
			Help:      "Duration of a complete parse-and-generate call.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "har",
			Name:      "publisher_enabled",
			Help:      "1 when the Kafka report publisher is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.ReportsGenerated,
		m.ParseErrors,
		m.GenerateErrors,
		m.DegradedSections,
		m.ReportSections,
		m.GenerateDuration,
		m.PublisherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "har", Name: "reports_generated_total"}, []string{"category"}),
		ParseErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "har", Name: "parse_errors_total"}),
		GenerateErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "har", Name: "generate_errors_total"}),
		DegradedSections: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "har", Name: "degraded_sections_total"}, []string{"hazard"}),
		ReportSections:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "har", Name: "report_sections"}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "har", Name: "generate_duration_seconds"}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "har", Name: "publisher_enabled"}),
	}
}
