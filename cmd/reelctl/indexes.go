package main

import (
	"fmt"

	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/spf13/cobra"
)

func newIndexesCmd() *cobra.Command {
	var reset, drop bool

	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "Create the collection indexes if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			if drop {
				if err := mongodb.DeleteAllIndexes(ctx, db); err != nil {
					return fmt.Errorf("failed to delete indexes: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All indexes deleted successfully")
				return nil
			}

			if err := mongodb.CreateAllIndexes(ctx, db, reset); err != nil {
				return fmt.Errorf("failed to create indexes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Indexes command ran successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate every index")
	cmd.Flags().BoolVar(&drop, "delete", false, "delete the indexes instead of creating them")
	return cmd
}
