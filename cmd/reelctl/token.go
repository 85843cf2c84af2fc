package main

import (
	"errors"
	"fmt"

	"github.com/lealre/reelstate/internal/auth"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/spf13/cobra"
)

// newTokenCmd mints a bearer token for an existing account without its
// password, for scripts and the watch command.
func newTokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, db, err := openDB(ctx, cfg)
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			userDb, err := db.GetUserByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, mongodb.ErrRecordNotFound) {
					return fmt.Errorf("no user with email %s", email)
				}
				return err
			}
			if userDb.IsBanned {
				return fmt.Errorf("user %s is banned", email)
			}

			token, err := auth.MakeJWT(userDb.Id, auth.Role(userDb.Role), cfg.Auth.Secret, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}
