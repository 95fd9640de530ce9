package bootstrap

import (
	attributionHandler "affiliate-ledger/internal/attribution/handler"
	attributionProcessor "affiliate-ledger/internal/attribution/processor"
	authHandler "affiliate-ledger/internal/auth/handler"
	authProcessor "affiliate-ledger/internal/auth/processor"
	kafkaClient "affiliate-ledger/internal/clients/kafka"
	"affiliate-ledger/internal/clients/mail"
	redisClient "affiliate-ledger/internal/clients/redis"
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/email"
	"affiliate-ledger/internal/events"
	"affiliate-ledger/internal/jobs"
	ledgerHandler "affiliate-ledger/internal/ledger/handler"
	ledgerProcessor "affiliate-ledger/internal/ledger/processor"
	"affiliate-ledger/internal/linkcache"
	linksHandler "affiliate-ledger/internal/links/handler"
	linksProcessor "affiliate-ledger/internal/links/processor"
	"affiliate-ledger/internal/notifications"
	"affiliate-ledger/internal/observability"
	"affiliate-ledger/internal/ratelimit"
	"affiliate-ledger/internal/store"
	"context"
	"fmt"
	"os"
	"strings"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Redis  *redisClient.Client
	Logger *observability.Logger

	// Shared services
	Limiter    *ratelimit.Service
	HookPolicy ratelimit.Policy

	// Processors used by background workers
	AttributionProcessor attributionProcessor.AttributionProcessor

	// Handlers
	AuthHandler        authHandler.Handler
	LinksHandler       linksHandler.Handler
	AttributionHandler attributionHandler.Handler
	LedgerHandler      ledgerHandler.Handler

	// Clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	JobClient     *jobs.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis backs the code cache, the limiter and the job queue. Without it the
	// cache always misses, the limiter runs in process and the hook attributes inline.
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	var cacheBackend linkcache.Backend
	if deps.Redis != nil {
		cacheBackend = deps.Redis
		deps.Limiter = ratelimit.NewService(deps.Redis, logger)
		deps.JobClient = jobs.NewClient(cfg.Redis.Addr(), logger)
	} else {
		deps.Limiter = ratelimit.NewService(nil, logger)
	}
	codeCache := linkcache.New(cacheBackend, cfg.Affiliate.CacheTTL)
	deps.HookPolicy = ratelimit.HookPolicy(cfg.Affiliate.HookLimit, cfg.Affiliate.HookWindow)

	// Initialize domain event publishing
	deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
		Brokers: strings.Split(cfg.Kafka.Brokers, ","),
		Topic:   cfg.Kafka.Topic,
	}, logger)
	publisher := events.NewPublisher(deps.KafkaProducer)

	// Initialize notification email
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, cfg.Services.MailRatePerSecond, cfg.Services.MailBurst, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}
	emailService := email.New(mailClient, cfg.Services.DefaultEmailSender, logger)
	notifier := notifications.New(&deps.Store, emailService, publisher, cfg.Services.WebAppURI, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, deps.Limiter,
		ratelimit.LoginPolicy(cfg.Affiliate.LoginLimit, cfg.Affiliate.LoginWindow), logger)

	// Initialize links processor and handler
	linkProc := linksProcessor.New(&deps.Store, codeCache, linksProcessor.Config{
		CodeLength:       cfg.Affiliate.CodeLength,
		MaxAllocAttempts: cfg.Affiliate.MaxAllocAttempts,
		CacheTTL:         cfg.Affiliate.CacheTTL,
	}, logger)
	deps.LinksHandler = linksHandler.New(linkProc, logger, cfg.Server.PublicURL)

	// Initialize attribution processor and handler
	deps.AttributionProcessor = attributionProcessor.New(&deps.Store, &linkProc, deps.Limiter, publisher, attributionProcessor.Config{
		ClickWindow: cfg.Affiliate.ClickDebounceWindow,
		DefaultRate: cfg.Affiliate.DefaultRate,
	}, logger)

	var enqueuer attributionHandler.TaskEnqueuer
	if deps.JobClient != nil {
		enqueuer = deps.JobClient
	}
	deps.AttributionHandler = attributionHandler.New(deps.AttributionProcessor, enqueuer, attributionHandler.CookieConfig{
		Name:   cfg.Affiliate.CookieName,
		TTL:    cfg.Affiliate.CookieTTL,
		Secure: os.Getenv("GO_ENV") == "production",
	}, cfg.Services.WebAppURI, logger)

	// Initialize ledger processor and handler
	ledgerProc := ledgerProcessor.New(&deps.Store, notifier, ledgerProcessor.Config{
		MinWithdrawAmount: cfg.Affiliate.MinWithdrawAmount,
		WithdrawIncrement: cfg.Affiliate.WithdrawIncrement,
	}, logger)
	deps.LedgerHandler = ledgerHandler.New(ledgerProc, logger)

	logger.Info(ctx, "dependencies initialized",
		observability.Field{Key: "redis_enabled", Value: deps.Redis != nil},
	)
	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.JobClient != nil {
		if err := d.JobClient.Close(); err != nil {
			d.Logger.WarnWithError(ctx, "failed to close job client", err)
		}
	}
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.WarnWithError(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.Redis.Close(); err != nil {
		d.Logger.WarnWithError(ctx, "failed to close redis client", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.WarnWithError(ctx, "failed to close store", err)
	}
}
