package main

import (
	"fmt"
	"log/slog"

	sessionstore "propertyhub/internal/auth/store/session"
	userstore "propertyhub/internal/auth/store/user"
	paymentstore "propertyhub/internal/payment/store"
	"propertyhub/internal/platform/config"
	"propertyhub/internal/platform/database"
	reminderstore "propertyhub/internal/reminder/store"
	settingsstore "propertyhub/internal/settings/store"
	tenantstore "propertyhub/internal/tenant/store"
	unitstore "propertyhub/internal/unit/store"
)

// stores bundles every persistence backend behind its interface so serve and
// seed share one wiring path.
type stores struct {
	pool *database.Pool

	users     userstore.Store
	sessions  sessionstore.Store
	units     unitstore.Store
	tenants   tenantstore.Store
	payments  paymentstore.Store
	reminders reminderstore.Store
	settings  settingsstore.Store
}

// buildStores selects Postgres when DATABASE_URL is set and falls back to the
// in-memory stores otherwise. The caller must Close the returned stores.
func buildStores(cfg config.Server, logger *slog.Logger) (*stores, error) {
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL

	pool, err := database.New(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if pool == nil {
		logger.Info("no DATABASE_URL configured, using in-memory stores")
		return &stores{
			users:     userstore.NewInMemory(),
			sessions:  sessionstore.NewInMemory(),
			units:     unitstore.NewInMemory(),
			tenants:   tenantstore.NewInMemory(),
			payments:  paymentstore.NewInMemory(),
			reminders: reminderstore.NewInMemory(),
			settings:  settingsstore.NewInMemory(),
		}, nil
	}

	logger.Info("using postgres stores")
	db := pool.DB()
	return &stores{
		pool:      pool,
		users:     userstore.NewPostgres(db),
		sessions:  sessionstore.NewPostgres(db),
		units:     unitstore.NewPostgres(db),
		tenants:   tenantstore.NewPostgres(db),
		payments:  paymentstore.NewPostgres(db),
		reminders: reminderstore.NewPostgres(db),
		settings:  settingsstore.NewPostgres(db),
	}, nil
}

// Close releases the database pool, if any.
func (s *stores) Close() error {
	return s.pool.Close()
}
