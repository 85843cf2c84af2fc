// Command reelctl holds the operational tasks of the service: index
// management, superuser bootstrap, token minting and a progress emitter for
// exercising a running server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lealre/reelstate/internal/config"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reelctl",
		Short:         "Operational tooling for the reelstate backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newIndexesCmd(),
		newSuperuserCmd(),
		newTokenCmd(),
		newWatchCmd(),
	)
	return root
}

// loadConfig reads the configuration and sets up logging.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	logx.Init(logx.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	return cfg, nil
}

// openDB connects to MongoDB. The caller disconnects the returned client.
func openDB(ctx context.Context, cfg config.Config) (*mongo.Client, *mongodb.DB, error) {
	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	return client, mongodb.NewDB(client, cfg.Mongo.Database), nil
}
