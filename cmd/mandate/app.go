package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	ackstore "mandate/internal/acknowledgement/store"
	auditsvc "mandate/internal/audit"
	catalogstore "mandate/internal/catalog/store"
	"mandate/internal/compliance"
	compliancemetrics "mandate/internal/compliance/metrics"
	directorystore "mandate/internal/directory/store"
	"mandate/internal/evidence"
	evidencemetrics "mandate/internal/evidence/metrics"
	"mandate/internal/notify"
	notifyamqp "mandate/internal/notify/amqp"
	notifykafka "mandate/internal/notify/kafka"
	obligationstore "mandate/internal/obligation/store"
	"mandate/internal/platform/config"
	"mandate/internal/platform/postgres"
	platformredis "mandate/internal/platform/redis"
	"mandate/internal/reminder"
	remindermetrics "mandate/internal/reminder/metrics"
	auditpublisher "mandate/pkg/platform/audit/publisher"
	auditstore "mandate/pkg/platform/audit/store/postgres"
	"mandate/pkg/platform/circuit"
	"mandate/pkg/platform/tx"
)

// app holds the wired services and the resources that must be released on
// shutdown.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	db       *sql.DB
	redis    *platformredis.Client

	compliance *compliance.Service
	reminders  *reminder.Service
	evidence   *evidence.Service
	audit      *auditsvc.Service

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (_ *app, err error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = a.close()
		}
	}()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.db, err = postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.db.Close)

	if cfg.Database.MigrateOnStart {
		m, err := postgres.NewMigrator(a.db)
		if err != nil {
			return nil, err
		}
		if err := m.Up(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info().Msg("migrations applied")
	}

	a.redis, err = platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if a.redis != nil {
		a.closers = append(a.closers, a.redis.Close)
	} else {
		logger.Warn().Msg("redis not configured: course cache and reminder pass lock disabled")
	}

	policy, err := compliance.PolicyFromConfig(cfg.Compliance)
	if err != nil {
		return nil, err
	}

	obligations := obligationstore.NewPostgres(a.db)
	directory := directorystore.NewPostgres(a.db)
	acks := ackstore.NewPostgres(a.db)
	var catalog catalogstore.Source = catalogstore.NewPostgres(a.db)
	if a.redis != nil {
		catalog = catalogstore.NewCachedStore(catalog, a.redis.Client,
			catalogstore.WithCacheTTL(cfg.Redis.CatalogCacheTTL),
			catalogstore.WithCacheLogger(logger.With().Str("component", "catalog_cache").Logger()),
		)
	}

	audits := auditstore.New(a.db)
	auditor := auditpublisher.New(audits,
		auditpublisher.WithLogger(logger.With().Str("component", "audit").Logger()),
		auditpublisher.WithMetrics(auditpublisher.NewMetrics(a.registry)),
	)
	a.audit = auditsvc.NewService(audits)

	notifier, err := a.buildNotifier(ctx)
	if err != nil {
		return nil, err
	}

	a.compliance = compliance.NewService(obligations,
		compliance.WithCourseResolver(catalog),
		compliance.WithPolicy(policy),
		compliance.WithAggregationWorkers(cfg.Compliance.Workers),
		compliance.WithLogger(logger.With().Str("component", "compliance").Logger()),
		compliance.WithMetrics(compliancemetrics.New(a.registry)),
	)

	reminderOpts := []reminder.Option{
		reminder.WithSendLimit(cfg.Notifier.SendRate, cfg.Notifier.SendBurst),
		reminder.WithDeepLinkBase(cfg.Notifier.DeepLinkBaseURL),
		reminder.WithLogger(logger.With().Str("component", "reminder").Logger()),
		reminder.WithMetrics(remindermetrics.New(a.registry)),
		reminder.WithAuditor(auditor),
	}
	if a.redis != nil {
		reminderOpts = append(reminderOpts, reminder.WithPassLock(reminder.NewRedisPassLock(a.redis.Client), cfg.Reminder.LockTTL))
	}
	a.reminders = reminder.NewService(obligations, directory, catalog, notifier, reminderOpts...)

	a.evidence = evidence.NewService(obligations, catalog, acks,
		evidence.WithPolicy(policy),
		evidence.WithAggregationWorkers(cfg.Compliance.Workers),
		evidence.WithLogger(logger.With().Str("component", "evidence").Logger()),
		evidence.WithMetrics(evidencemetrics.New(a.registry)),
		evidence.WithAuditor(auditor),
		evidence.WithSnapshot(tx.ReadSnapshot(a.db)),
	)
	return a, nil
}

// buildNotifier assembles the configured primary and fallback adapters behind
// a circuit breaker. A primary that cannot connect at startup is replaced by
// the fallback when one is configured.
func (a *app) buildNotifier(ctx context.Context) (notify.Notifier, error) {
	nc := a.cfg.Notifier
	log := a.logger.With().Str("component", "notifier").Logger()

	fallback, err := a.notifierAdapter(ctx, nc.Fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback notifier: %w", err)
	}

	primary, err := a.notifierAdapter(ctx, nc.Primary)
	if err != nil {
		if fallback == nil {
			return nil, fmt.Errorf("primary notifier: %w", err)
		}
		log.Error().Err(err).Str("primary", nc.Primary).Str("fallback", nc.Fallback).
			Msg("primary notifier unavailable, sending through fallback")
		return fallback, nil
	}
	if primary == nil {
		return nil, fmt.Errorf("notifier.primary must be one of kafka, amqp, log")
	}

	breaker := circuit.New("notifier."+nc.Primary,
		circuit.WithFailureThreshold(nc.FailureThreshold),
		circuit.WithSuccessThreshold(nc.SuccessThreshold),
		circuit.WithCooldown(nc.Cooldown),
	)
	return notify.NewFailover(primary, fallback,
		notify.WithBreaker(breaker),
		notify.WithFailoverLogger(log),
	), nil
}

func (a *app) notifierAdapter(ctx context.Context, kind string) (notify.Notifier, error) {
	switch kind {
	case "", "none":
		return nil, nil
	case "log":
		return notify.NewLogNotifier(a.logger.With().Str("component", "notifier.log").Logger()), nil
	case "kafka":
		p, err := notifykafka.New(ctx, a.cfg.Kafka, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error { p.Close(); return nil })
		return p, nil
	case "amqp":
		p, err := notifyamqp.New(a.cfg.RabbitMQ, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	default:
		return nil, fmt.Errorf("unknown notifier %q", kind)
	}
}

// close releases resources in reverse order of acquisition.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
