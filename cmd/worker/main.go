package main

import (
	"affiliate-ledger/internal/bootstrap"
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/jobs"
	"affiliate-ledger/internal/jobs/workers"
	"affiliate-ledger/internal/observability"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	logger.Info(ctx, "Starting background worker server...")

	if !cfg.Redis.Enabled {
		log.Fatal("Redis must be enabled to run the attribution worker")
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Cleanup()

	attributionWorker := workers.NewAttributionWorker(&deps.AttributionProcessor, logger)

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		asynq.Config{
			Concurrency: cfg.Jobs.Concurrency,
			Queues: map[string]int{
				jobs.QueueHigh:    6,
				jobs.QueueDefault: 3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(ctx, fmt.Sprintf("task %s failed", task.Type()), err)
			}),
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
			Logger:         &asynqLogger{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeAttributeReferral, attributionWorker.ProcessAttributionTask)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, fmt.Sprintf("Worker server started on Redis: %s", cfg.Redis.Addr()))
		if err := srv.Run(mux); err != nil {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")

	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}

// asynqLogger adapts observability.Logger to asynq.Logger interface
type asynqLogger struct {
	logger *observability.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
	os.Exit(1)
}
