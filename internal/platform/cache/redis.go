package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"giggles/internal/platform/metrics"
)

const keyVersion = "v1"

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, redisURL string) (redis.UniversalClient, error) {
	redisURL = strings.TrimSpace(redisURL)
	if redisURL == "" {
		return nil, fmt.Errorf("redis url must be provided")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// CountCache memoises integer counts for a short TTL. Any Redis failure falls
// through to the loader so callers never fail because the cache is down.
type CountCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewCountCache(client redis.UniversalClient, prefix string, ttl time.Duration, logger *slog.Logger) *CountCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CountCache{
		client: client,
		prefix: strings.TrimSuffix(prefix, ":"),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CountCache) key(name string) string {
	return c.prefix + ":" + keyVersion + ":" + name
}

// Get returns the cached count for name, or calls load and caches its result.
func (c *CountCache) Get(ctx context.Context, name string, load func(context.Context) (int, error)) (int, error) {
	raw, err := c.client.Get(ctx, c.key(name)).Result()
	switch {
	case err == nil:
		if value, convErr := strconv.Atoi(raw); convErr == nil {
			metrics.QueueSizeCacheTotal.WithLabelValues("hit").Inc()
			return value, nil
		}
	case errors.Is(err, redis.Nil):
		metrics.QueueSizeCacheTotal.WithLabelValues("miss").Inc()
	default:
		metrics.QueueSizeCacheTotal.WithLabelValues("error").Inc()
		c.logger.Warn("count cache read failed",
			"event", "cache_count_read_failed",
			"module", "internal/platform/cache",
			"layer", "platform",
			"key", c.key(name),
			"error", err.Error(),
		)
	}

	value, err := load(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, c.key(name), value, c.ttl).Err(); err != nil {
		c.logger.Warn("count cache write failed",
			"event", "cache_count_write_failed",
			"module", "internal/platform/cache",
			"layer", "platform",
			"key", c.key(name),
			"error", err.Error(),
		)
	}
	return value, nil
}

// Invalidate drops the cached value so the next Get reloads it.
func (c *CountCache) Invalidate(ctx context.Context, name string) {
	if err := c.client.Del(ctx, c.key(name)).Err(); err != nil {
		c.logger.Warn("count cache invalidate failed",
			"event", "cache_count_invalidate_failed",
			"module", "internal/platform/cache",
			"layer", "platform",
			"key", c.key(name),
			"error", err.Error(),
		)
	}
}
