package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	adminCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(adminUsername) == "" || strings.TrimSpace(adminPassword) == "" {
				return errors.New("--username and --password are required")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			created, err := a.users.Ensure(adminUsername, adminPassword)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created admin user %s\n", strings.TrimSpace(adminUsername))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin user %s already exists\n", strings.TrimSpace(adminUsername))
			}
			return nil
		},
	}
)

func init() {
	adminCreateCmd.Flags().StringVar(&adminUsername, "username", "", "admin user name")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	adminCmd.AddCommand(adminCreateCmd)
}
