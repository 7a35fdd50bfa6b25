package main

import (
	"os"

	"github.com/livingprogress/mentorme/cmd/server/cmd"

	"github.com/spf13/cobra"
)

func main() {
	serve := cmd.ServeCmd()

	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "MentorMe API server",
		// Running without a subcommand serves the API
		RunE: serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
