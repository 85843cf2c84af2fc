package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lealre/reelstate/internal/config"
	"github.com/lealre/reelstate/internal/logx"
	"github.com/lealre/reelstate/internal/mongodb"
	"github.com/lealre/reelstate/internal/server"
	"github.com/lealre/reelstate/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logx.Init(logx.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	logger := logx.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(disconnectCtx)
	}()

	db := mongodb.NewDB(client, cfg.Mongo.Database)
	if err := mongodb.CreateAllIndexes(ctx, db, false); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	logger.Info().Str("db", cfg.Mongo.Database).Msg("database ready")

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewServer(db, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	supCfg := supervisor.DefaultConfig()
	supCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + time.Second
	sup := supervisor.New("reelstate", supCfg)
	sup.Add(server.NewHTTPService(httpServer, cfg.Server.ShutdownTimeout))

	if err := sup.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
