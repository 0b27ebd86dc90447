package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"propertyhub/internal/platform/config"
	"propertyhub/internal/platform/database"
	"propertyhub/internal/platform/logger"
	"propertyhub/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			log := logger.New()

			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL must be set to migrate")
			}

			dbCfg := database.DefaultConfig()
			dbCfg.URL = cfg.DatabaseURL
			pool, err := database.New(dbCfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close() //nolint:errcheck

			if err := migrations.Apply(cmd.Context(), pool.DB()); err != nil {
				return err
			}

			names, err := migrations.Files()
			if err != nil {
				return err
			}
			log.Info("migrations applied", "files", len(names))
			return nil
		},
	}
}
