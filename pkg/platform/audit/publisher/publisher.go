// Package publisher writes audit events with fail-closed semantics: the
// caller blocks until the store accepts the event and must treat an error as
// a failure of its own operation.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"mandate/pkg/platform/audit"
)

type Metrics struct {
	Emitted         *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	PersistDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_audit_events_emitted_total",
			Help: "Audit events persisted, by category.",
		}, []string{"category"}),
		PersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mandate_audit_persist_failures_total",
			Help: "Audit events the store rejected, by category.",
		}, []string{"category"}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mandate_audit_persist_duration_seconds",
			Help:    "Time spent writing one audit event.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}

type Publisher struct {
	store   audit.Store
	now     func() time.Time
	newID   func() uuid.UUID
	logger  zerolog.Logger
	metrics *Metrics
}

type Option func(*Publisher)

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		if now != nil {
			p.now = now
		}
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		now:    time.Now,
		newID:  uuid.New,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit validates and persists event. ID, Timestamp and Category are filled
// in when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.OrgID.IsNil() {
		return fmt.Errorf("audit event requires org id")
	}
	if event.Action == "" {
		return fmt.Errorf("audit event requires action")
	}
	if event.ID == uuid.Nil {
		event.ID = p.newID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	if event.Category == "" {
		event.Category = event.Action.Category()
	}

	start := time.Now()
	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.PersistFailures.WithLabelValues(string(event.Category)).Inc()
		}
		p.logger.Error().Err(err).
			Str("action", string(event.Action)).
			Str("org_id", event.OrgID.String()).
			Msg("audit persistence failed")
		return fmt.Errorf("audit persistence failed: %w", err)
	}
	if p.metrics != nil {
		p.metrics.PersistDuration.Observe(time.Since(start).Seconds())
		p.metrics.Emitted.WithLabelValues(string(event.Category)).Inc()
	}
	return nil
}
