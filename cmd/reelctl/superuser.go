package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lealre/reelstate/internal/services/users"
	"github.com/spf13/cobra"
)

// newSuperuserCmd creates the first admin account. Credentials come from
// flags, falling back to SUPERUSER_* variables.
func newSuperuserCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "superuser",
		Short: "Create an admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			req := users.NewUserRequest{
				Name:     firstNonEmpty(name, os.Getenv("SUPERUSER_NAME"), "admin"),
				Email:    firstNonEmpty(email, os.Getenv("SUPERUSER_EMAIL")),
				Password: firstNonEmpty(password, os.Getenv("SUPERUSER_PASSWORD")),
			}

			ctx := cmd.Context()
			client, db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			user, created, err := users.CreateSuperuser(db, ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create superuser: %w", err)
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "User with email '%s' already exists, skipping creation\n", user.Email)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created\n", user.Id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
