package main

import (
	"github.com/spf13/cobra"

	"propertyhub/internal/platform/config"
	"propertyhub/internal/platform/logger"
	"propertyhub/internal/seeder"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the stores with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			log := logger.New()

			st, err := buildStores(cfg, log)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			return seeder.New(st.units, st.tenants, st.payments, log).SeedAll(cmd.Context())
		},
	}
}
