package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for compliance reporting.
type Metrics struct {
	AggregationDuration prometheus.Histogram
	ReportsByStatus     *prometheus.CounterVec
	Warnings            *prometheus.CounterVec
	StoreFailures       prometheus.Counter
}

// New registers the collectors on reg, or the default registry when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		AggregationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mandate_compliance_aggregation_duration_seconds",
			Help:    "Duration of classifying and aggregating one org snapshot",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ReportsByStatus: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_compliance_reports_total",
			Help: "Compliance reports built, by resulting org status",
		}, []string{"status"}),
		Warnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_compliance_warnings_total",
			Help: "Tolerated data-shape problems surfaced as warnings, by kind",
		}, []string{"kind"}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mandate_compliance_store_failures_total",
			Help: "Reports that failed because the obligation store was unavailable",
		}),
	}
}

func (m *Metrics) ObserveAggregation(d time.Duration) {
	if m != nil {
		m.AggregationDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementReport(status string) {
	if m != nil {
		m.ReportsByStatus.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementWarning(kind string) {
	if m != nil {
		m.Warnings.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementStoreFailure() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}
