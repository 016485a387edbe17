package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"mini-tracker-go/internal/app"
	"mini-tracker-go/pkg/logger"
)

func newAdminCmd(log logger.Logger) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog administrators",
	}
	admin.AddCommand(
		newSetAdminCmd(log, "grant", "Give a user admin privileges", true),
		newSetAdminCmd(log, "revoke", "Remove admin privileges from a user", false),
	)
	return admin
}

func newSetAdminCmd(log logger.Logger, use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.Open(log)
			if err != nil {
				return err
			}
			defer application.Close()

			user, err := application.Users().SetAdmin(cmd.Context(), args[0], isAdmin)
			if err != nil {
				return fmt.Errorf("%s %q: %w", use, args[0], err)
			}

			log.Info("admin: updated", "username", user.Username, "is_admin", user.IsAdmin)
			fmt.Fprintf(cmd.OutOrStdout(), "%s is_admin=%t\n", user.Username, user.IsAdmin)
			return nil
		},
	}
}
