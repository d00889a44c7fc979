package main

import (
	"os"

	"github.com/spf13/cobra"

	"construlink/internal/interfaces/cli/migrate"
	"construlink/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "construlink",
		Short: "Construlink subscription service",
		Long:  `Subscription plan management and usage limit enforcement for the Construlink supplier directory.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
