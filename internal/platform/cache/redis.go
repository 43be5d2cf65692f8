package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/phrazzld/astral-api/internal/domain"
)

// RedisConfig holds connection and breaker settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string

	// Breaker settings; zero values take the defaults below.
	BreakerMaxRequests uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration
	BreakerMinRequests uint32
	FailureThreshold   float64
}

func (c *RedisConfig) applyDefaults() {
	if c.Prefix == "" {
		c.Prefix = "astral"
	}
	if c.BreakerMaxRequests == 0 {
		c.BreakerMaxRequests = 5
	}
	if c.BreakerInterval == 0 {
		c.BreakerInterval = 30 * time.Second
	}
	if c.BreakerTimeout == 0 {
		c.BreakerTimeout = 60 * time.Second
	}
	if c.BreakerMinRequests == 0 {
		c.BreakerMinRequests = 5
	}
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 0.8
	}
}

// RedisCache implements ChartCache on Redis. Every call goes through a
// circuit breaker; a cache miss is not a failure.
type RedisCache struct {
	client  redis.UniversalClient
	prefix  string
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisCacheWithClient(client, cfg, logger), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, cfg RedisConfig, logger *slog.Logger) *RedisCache {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "redis_cache"))

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-chart-cache",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	})

	return &RedisCache{
		client:  client,
		prefix:  cfg.Prefix,
		breaker: breaker,
		logger:  log,
	}
}

var _ ChartCache = (*RedisCache)(nil)

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.BirthChart, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, c.wrapKey(key)).Bytes()
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, c.mapBreakerError(err)
	}

	var chart domain.BirthChart
	if err := json.Unmarshal(out.([]byte), &chart); err != nil {
		c.logger.Warn("dropping undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		_ = c.Delete(ctx, key)
		return nil, ErrCacheMiss
	}
	return &chart, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, chart *domain.BirthChart, ttl time.Duration) error {
	data, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("encode chart: %w", err)
	}
	_, err = c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, c.wrapKey(key), data, ttl).Err()
	})
	return c.mapBreakerError(err)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrapKey(k)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Unlink(ctx, wrapped...).Err()
	})
	return c.mapBreakerError(err)
}

// State reports the breaker state.
func (c *RedisCache) State() gobreaker.State {
	return c.breaker.State()
}

func (c *RedisCache) Kind() string { return "redis" }

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) wrapKey(key string) string {
	return fmt.Sprintf("%s:%s", c.prefix, key)
}

func (c *RedisCache) mapBreakerError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
