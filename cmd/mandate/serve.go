package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	audithandler "mandate/internal/audit/handler"
	compliancehandler "mandate/internal/compliance/handler"
	evidencehandler "mandate/internal/evidence/handler"
	jwttoken "mandate/internal/jwt_token"
	"mandate/internal/platform/httpserver"
	"mandate/internal/platform/metrics"
	reminderhandler "mandate/internal/reminder/handler"
	httptransport "mandate/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("startup failed")
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Error().Err(err).Msg("failed to release resources")
		}
	}()

	health := map[string]httptransport.HealthCheck{
		"postgres": a.db.PingContext,
	}
	if a.redis != nil {
		health["redis"] = a.redis.Health
	}

	deps := httptransport.Deps{
		Routes: []httptransport.OrgRoutes{
			compliancehandler.New(a.compliance, log),
			reminderhandler.New(a.reminders, cfg.Reminder.DebounceWindow, log),
			evidencehandler.New(a.evidence, log),
			audithandler.New(a.audit, log),
		},
		Metrics: metrics.New(a.registry),
		CORS:    cfg.CORS,
		Health:  health,
		Logger:  log,
	}
	if cfg.Auth.Enabled {
		deps.Auth = jwttoken.New(cfg.Auth, jwttoken.WithLeeway(30*time.Second))
	} else {
		log.Warn().Msg("auth disabled: org routes are unauthenticated")
	}

	srv := httpserver.New(cfg.Server, httptransport.NewRouter(deps))

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Address).Msg("starting mandate API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
