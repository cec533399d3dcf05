package main

import (
	"os"

	"github.com/spf13/cobra"

	"subhub/internal/interfaces/cli/migrate"
	"subhub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subhub",
		Short: "SubHub - subscription management backend",
		Long:  `SubHub is the subscription management API server with built-in migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
