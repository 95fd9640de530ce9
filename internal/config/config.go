package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Services   ServicesConfig
	Kafka      KafkaConfig
	WorkerPool WorkerPoolConfig
	Jobs       JobsConfig
	Affiliate  AffiliateConfig
	Server     ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// RedisConfig holds cache and limiter backend settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds authentication-related configuration
type AuthConfig struct {
	JWTSecret string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	WebAppURI          string
	// MailRatePerSecond caps outbound notification email throughput.
	MailRatePerSecond float64
	MailBurst         int
}

// KafkaConfig holds Kafka/event streaming configuration
type KafkaConfig struct {
	Brokers       string
	Topic         string
	OrderTopic    string
	ConsumerGroup string
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	OrderWorkers int // Number of workers consuming order events
}

// JobsConfig holds asynq worker settings
type JobsConfig struct {
	Concurrency int
}

// AffiliateConfig holds the tunables of the attribution and commission ledger
type AffiliateConfig struct {
	CodeLength          int
	MaxAllocAttempts    int
	CacheTTL            time.Duration
	ClickDebounceWindow time.Duration
	LoginWindow         time.Duration
	LoginLimit          int
	HookWindow          time.Duration
	HookLimit           int
	DefaultRate         decimal.Decimal
	MinWithdrawAmount   decimal.Decimal
	WithdrawIncrement   decimal.Decimal
	CookieName          string
	CookieTTL           time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// PublicURL is the externally reachable origin used to build redirect links.
	PublicURL string
	// TrustedProxies may set X-Forwarded-For; the visitor fingerprint relies on it.
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Redis configuration
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.Port, err = getIntWithDefault("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return nil, err
	}

	// Services configuration
	if cfg.Services.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Services.DefaultEmailSender, err = requireEnv("DEFAULT_EMAIL_SENDER_ADDRESS"); err != nil {
		return nil, err
	}
	if cfg.Services.WebAppURI, err = requireEnv("WEBAPP_URI"); err != nil {
		return nil, err
	}
	mailRate := getEnvWithDefault("MAIL_RATE_PER_SECOND", "2")
	if cfg.Services.MailRatePerSecond, err = strconv.ParseFloat(mailRate, 64); err != nil {
		return nil, fmt.Errorf("failed to parse MAIL_RATE_PER_SECOND: %w", err)
	}
	if cfg.Services.MailBurst, err = getIntWithDefault("MAIL_BURST", 5); err != nil {
		return nil, err
	}

	// Kafka configuration
	cfg.Kafka.Brokers = getEnvWithDefault("KAFKA_BROKERS", "localhost:9092")
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "affiliate-events")
	cfg.Kafka.OrderTopic = getEnvWithDefault("KAFKA_ORDER_TOPIC", "order-events")
	cfg.Kafka.ConsumerGroup = getEnvWithDefault("KAFKA_CONSUMER_GROUP", "affiliate-attribution")

	// Worker pool configuration
	if cfg.WorkerPool.OrderWorkers, err = getIntWithDefault("ORDER_WORKERS", 5); err != nil {
		return nil, err
	}
	if cfg.Jobs.Concurrency, err = getIntWithDefault("JOB_CONCURRENCY", 10); err != nil {
		return nil, err
	}

	// Affiliate configuration
	if err := loadAffiliate(&cfg.Affiliate); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.PublicURL = strings.TrimRight(getEnvWithDefault("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", cfg.Server.Port)), "/")
	for _, proxy := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			cfg.Server.TrustedProxies = append(cfg.Server.TrustedProxies, proxy)
		}
	}
	if cfg.Server.ShutdownTimeout, err = getDurationWithDefault("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadAffiliate(a *AffiliateConfig) error {
	var err error
	if a.CodeLength, err = getIntWithDefault("AFFILIATE_CODE_LENGTH", 8); err != nil {
		return err
	}
	if a.MaxAllocAttempts, err = getIntWithDefault("AFFILIATE_MAX_ALLOC_ATTEMPTS", 10); err != nil {
		return err
	}
	if a.CacheTTL, err = getDurationWithDefault("AFFILIATE_CACHE_TTL", 24*time.Hour); err != nil {
		return err
	}
	if a.ClickDebounceWindow, err = getDurationWithDefault("AFFILIATE_CLICK_WINDOW", 10*time.Second); err != nil {
		return err
	}
	if a.LoginWindow, err = getDurationWithDefault("AUTH_LOGIN_WINDOW", 3*time.Second); err != nil {
		return err
	}
	if a.LoginLimit, err = getIntWithDefault("AUTH_LOGIN_LIMIT", 1); err != nil {
		return err
	}
	if a.HookWindow, err = getDurationWithDefault("ATTRIBUTION_HOOK_WINDOW", time.Minute); err != nil {
		return err
	}
	if a.HookLimit, err = getIntWithDefault("ATTRIBUTION_HOOK_LIMIT", 120); err != nil {
		return err
	}
	if a.DefaultRate, err = getDecimalWithDefault("AFFILIATE_DEFAULT_RATE", "0.10"); err != nil {
		return err
	}
	if a.MinWithdrawAmount, err = getDecimalWithDefault("WITHDRAW_MIN_AMOUNT", "100000"); err != nil {
		return err
	}
	if a.WithdrawIncrement, err = getDecimalWithDefault("WITHDRAW_INCREMENT", "1000"); err != nil {
		return err
	}
	a.CookieName = getEnvWithDefault("AFFILIATE_COOKIE_NAME", "aff_ref")
	if a.CookieTTL, err = getDurationWithDefault("AFFILIATE_COOKIE_TTL", 30*24*time.Hour); err != nil {
		return err
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// Addr returns the host:port pair used by go-redis and asynq
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}

func getDecimalWithDefault(key, defaultValue string) (decimal.Decimal, error) {
	value := getEnvWithDefault(key, defaultValue)
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
