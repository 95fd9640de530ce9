package main

import (
	"affiliate-ledger/internal/bootstrap"
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/workers"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
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

	logger.Info(ctx, "Starting Kafka order event worker...")

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}
	defer deps.Cleanup()

	brokers := strings.Split(cfg.Kafka.Brokers, ",")
	consumerConfig := workers.DefaultConsumerConfig(brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.OrderTopic)
	consumerConfig.NumWorkers = cfg.WorkerPool.OrderWorkers

	orderProcessor := workers.NewOrderEventProcessor(&deps.AttributionProcessor, logger)
	orderConsumer := workers.NewConsumer(consumerConfig, orderProcessor, logger)

	logger.Info(ctx, fmt.Sprintf(`Kafka order worker configuration:
  - Workers: %d
  - Kafka brokers: %v
  - Kafka topic: %s
  - Consumer group: %s`,
		consumerConfig.NumWorkers, brokers, consumerConfig.Topic, consumerConfig.ConsumerGroup))

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := orderConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "Order consumer error", err)
		}
	}()

	select {
	case <-sigChan:
		logger.Info(ctx, "Received shutdown signal, stopping workers...")
	case <-done:
		logger.Info(ctx, "Order consumer exited")
	}

	orderConsumer.Stop()
	cancel()
	<-done
	logger.Info(ctx, "Kafka order worker stopped")
}
