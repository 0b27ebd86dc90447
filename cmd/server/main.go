package main

import (
	"os"

	"github.com/spf13/cobra"
)

// main only dispatches subcommands. Dependency wiring lives in serve.go and
// seed.go; business logic stays in the internal services packages.
func main() {
	root := &cobra.Command{
		Use:           "server",
		Short:         "PropertyHub admin dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSeedCmd(), newMigrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
