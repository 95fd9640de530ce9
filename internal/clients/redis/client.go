package redis

import (
	"affiliate-ledger/internal/config"
	"affiliate-ledger/internal/observability"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotInitialized = errors.New("redis client not initialized")
	// ErrKeyNotFound is returned by Get when the key does not exist.
	ErrKeyNotFound = errors.New("redis key not found")
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(ctx, "successfully connected to Redis",
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	)

	return NewFromClient(client, logger), nil
}

// NewFromClient wraps an already configured go-redis client.
func NewFromClient(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{
		client: client,
		logger: logger,
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns the string value stored at key, or ErrKeyNotFound
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if !c.IsEnabled() {
		return "", ErrNotInitialized
	}
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return val, err
}

// Set stores value at key with the given expiration
func (c *Client) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Del(ctx, keys...).Err()
}

// RunScript executes a Lua script atomically on the server, loading it on first use
func (c *Client) RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) (interface{}, error) {
	if !c.IsEnabled() {
		return nil, ErrNotInitialized
	}
	return script.Run(ctx, c.client, keys, args...).Result()
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}
