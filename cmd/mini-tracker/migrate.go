package main

import (
	"github.com/spf13/cobra"
	"mini-tracker-go/internal/app"
	"mini-tracker-go/pkg/logger"
)

func newMigrateCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.Open(log)
			if err != nil {
				return err
			}
			log.Info("migrate: schema up to date")
			return application.Close()
		},
	}
}
