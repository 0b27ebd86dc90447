package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	authhandler "propertyhub/internal/auth/handler"
	authservice "propertyhub/internal/auth/service"
	paymenthandler "propertyhub/internal/payment/handler"
	paymentservice "propertyhub/internal/payment/service"
	"propertyhub/internal/platform/config"
	"propertyhub/internal/platform/health"
	"propertyhub/internal/platform/httpserver"
	"propertyhub/internal/platform/logger"
	"propertyhub/internal/platform/metrics"
	reminderhandler "propertyhub/internal/reminder/handler"
	reminderservice "propertyhub/internal/reminder/service"
	reporthandler "propertyhub/internal/report/handler"
	reportservice "propertyhub/internal/report/service"
	"propertyhub/internal/report/tracer"
	"propertyhub/internal/seeder"
	settingshandler "propertyhub/internal/settings/handler"
	settingsservice "propertyhub/internal/settings/service"
	tenanthandler "propertyhub/internal/tenant/handler"
	tenantservice "propertyhub/internal/tenant/service"
	"propertyhub/internal/token"
	httptransport "propertyhub/internal/transport/http"
	unithandler "propertyhub/internal/unit/handler"
	unitservice "propertyhub/internal/unit/service"
)

func newServeCmd() *cobra.Command {
	var seedDemo bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), seedDemo)
		},
	}
	cmd.Flags().BoolVar(&seedDemo, "seed", false, "populate the stores with demo data on startup")
	return cmd
}

func runServe(ctx context.Context, seedDemo bool) error {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing propertyhub",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	st, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if seedDemo {
		if err := seeder.New(st.units, st.tenants, st.payments, log).SeedAll(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	m := metrics.New()
	tokens := token.New(cfg.JWTSigningKey, cfg.SessionTTL)

	authSvc, err := authservice.New(st.users, st.sessions, tokens,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithSessionTTL(cfg.SessionTTL),
	)
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	tenantSvc, err := tenantservice.New(st.tenants, st.units,
		tenantservice.WithLogger(log),
		tenantservice.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("build tenant service: %w", err)
	}

	unitSvc, err := unitservice.New(st.units,
		unitservice.WithLogger(log),
		unitservice.WithMetrics(m),
		unitservice.WithTenantDirectory(tenantSvc),
	)
	if err != nil {
		return fmt.Errorf("build unit service: %w", err)
	}

	paymentSvc, err := paymentservice.New(st.payments,
		paymentservice.WithLogger(log),
		paymentservice.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("build payment service: %w", err)
	}

	settingsSvc, err := settingsservice.New(st.settings,
		settingsservice.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("build settings service: %w", err)
	}

	reminderSvc, err := reminderservice.New(st.reminders, st.tenants, st.payments, settingsSvc,
		reminderservice.WithLogger(log),
		reminderservice.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("build reminder service: %w", err)
	}

	reportSvc, err := reportservice.New(st.units, st.payments, st.tenants,
		reportservice.WithLogger(log),
		reportservice.WithMetrics(m),
		reportservice.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		return fmt.Errorf("build report service: %w", err)
	}

	healthHandler := health.New(cfg.Environment)
	if st.pool != nil {
		healthHandler.RegisterCheck("database", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return st.pool.Health(checkCtx)
		})
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        m,
		TokenValidator: token.NewMiddlewareAdapter(tokens),
		Sessions:       authSvc,
		Auth:           authhandler.New(authSvc, log),
		Units:          unithandler.New(unitSvc, log),
		Tenants:        tenanthandler.New(tenantSvc, log),
		Payments:       paymenthandler.New(paymentSvc, log),
		Reminders:      reminderhandler.New(reminderSvc, log),
		Settings:       settingshandler.New(settingsSvc, log),
		Reports:        reporthandler.New(reportSvc, log),
		Health:         healthHandler,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown on SIGINT.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}
