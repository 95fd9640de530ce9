package main

import (
	"affiliate-ledger/internal/bootstrap"
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/server"
	"context"
	"log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	if err := srv.Setup(); err != nil {
		deps.Cleanup()
		logger.Fatal(ctx, "failed to set up server", err)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Error(ctx, "server shutdown failed", err)
	}
}
