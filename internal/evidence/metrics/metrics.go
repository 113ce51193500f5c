package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for evidence pack exports.
type Metrics struct {
	BuildDuration   prometheus.Histogram
	PacksBuilt      prometheus.Counter
	SectionFailures *prometheus.CounterVec
}

// New registers the collectors on reg, or the default registry when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mandate_evidence_pack_build_duration_seconds",
			Help:    "Time to assemble and seal one evidence pack",
			Buckets: prometheus.DefBuckets,
		}),
		PacksBuilt: factory.NewCounter(prometheus.CounterOpts{
			Name: "mandate_evidence_packs_total",
			Help: "Evidence packs built",
		}),
		SectionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_evidence_section_failures_total",
			Help: "Evidence pack sections that could not be fetched, by section",
		}, []string{"section"}),
	}
}

func (m *Metrics) ObserveBuild(d time.Duration) {
	if m != nil {
		m.BuildDuration.Observe(d.Seconds())
		m.PacksBuilt.Inc()
	}
}

func (m *Metrics) IncrementSectionFailure(section string) {
	if m != nil {
		m.SectionFailures.WithLabelValues(section).Inc()
	}
}
