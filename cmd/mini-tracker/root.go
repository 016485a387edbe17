package main

import (
	"github.com/spf13/cobra"
	"mini-tracker-go/pkg/logger"
)

func newRootCmd(log logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "mini-tracker",
		Short: "Miniature collection tracker API",
		Long: `mini-tracker serves the collection tracker HTTP API.

Configuration comes from the environment and an optional .env file.
Running without a subcommand starts the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), log)
		},
	}

	root.AddCommand(
		newServeCmd(log),
		newMigrateCmd(log),
		newAdminCmd(log),
	)
	return root
}
