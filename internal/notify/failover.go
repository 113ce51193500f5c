package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"mandate/pkg/platform/circuit"
)

// Failover sends through the primary notifier while its circuit is closed
// and through the fallback when the primary fails or the circuit is open.
type Failover struct {
	primary  Notifier
	fallback Notifier
	breaker  *circuit.Breaker
	logger   zerolog.Logger
}

type FailoverOption func(*Failover)

func WithBreaker(b *circuit.Breaker) FailoverOption {
	return func(f *Failover) {
		if b != nil {
			f.breaker = b
		}
	}
}

func WithFailoverLogger(logger zerolog.Logger) FailoverOption {
	return func(f *Failover) {
		f.logger = logger
	}
}

// NewFailover wraps primary. fallback may be nil, in which case primary
// failures are returned to the caller.
func NewFailover(primary, fallback Notifier, opts ...FailoverOption) *Failover {
	f := &Failover{
		primary:  primary,
		fallback: fallback,
		breaker:  circuit.New("notifier"),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Failover) Send(ctx context.Context, msg Message) error {
	if !f.breaker.Allow() {
		return f.sendFallback(ctx, msg, fmt.Errorf("%s circuit open", f.breaker.Name()))
	}

	err := f.primary.Send(ctx, msg)
	if err == nil {
		if _, change := f.breaker.RecordSuccess(); change.Closed {
			f.logger.Info().Str("breaker", f.breaker.Name()).Msg("notifier circuit closed, primary restored")
		}
		return nil
	}

	_, change := f.breaker.RecordFailure()
	if change.Opened {
		f.logger.Warn().Err(err).Str("breaker", f.breaker.Name()).Msg("notifier circuit opened, using fallback")
	}
	return f.sendFallback(ctx, msg, err)
}

func (f *Failover) sendFallback(ctx context.Context, msg Message, primaryErr error) error {
	if f.fallback == nil {
		return primaryErr
	}
	if err := f.fallback.Send(ctx, msg); err != nil {
		return fmt.Errorf("primary: %v; fallback: %w", primaryErr, err)
	}
	return nil
}
