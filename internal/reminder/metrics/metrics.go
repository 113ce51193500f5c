package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reminder passes.
type Metrics struct {
	Passes       *prometheus.CounterVec
	PassDuration prometheus.Histogram
	Sends        *prometheus.CounterVec
	StaleStamps  prometheus.Counter
}

// New registers the collectors on reg, or the default registry when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Passes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_reminder_passes_total",
			Help: "Reminder passes run, by outcome (completed, cancelled, failed, locked)",
		}, []string{"outcome"}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mandate_reminder_pass_duration_seconds",
			Help:    "Wall time of one org reminder pass",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		Sends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_reminder_sends_total",
			Help: "Reminder notifications attempted, by outcome (sent, failed)",
		}, []string{"outcome"}),
		StaleStamps: factory.NewCounter(prometheus.CounterOpts{
			Name: "mandate_reminder_stale_stamps_total",
			Help: "Reminder stamps skipped because another pass stamped first",
		}),
	}
}

func (m *Metrics) IncrementPass(outcome string) {
	if m != nil {
		m.Passes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObservePass(d time.Duration) {
	if m != nil {
		m.PassDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementSend(outcome string) {
	if m != nil {
		m.Sends.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementStaleStamp() {
	if m != nil {
		m.StaleStamps.Inc()
	}
}
