package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopsy-platform/service-analytics/internal/analytics"
)

// ReportCache caches built sales reports in Redis, keyed by date range.
// A nil Redis client disables caching entirely; every lookup is a miss.
type ReportCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReportCache creates a new report cache.
func NewReportCache(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *ReportCache {
	if ttl == 0 {
		ttl = 10 * time.Minute // Default TTL
	}
	return &ReportCache{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey generates a cache key for a report over [start, end].
func (c *ReportCache) cacheKey(start, end string) string {
	return fmt.Sprintf("analytics:report:%s:%s", start, end)
}

// Get retrieves a cached report. A miss or any cache failure returns
// (nil, nil); the cache never turns into an error source for the caller.
func (c *ReportCache) Get(ctx context.Context, start, end string) (*analytics.Report, error) {
	if c.redis == nil {
		return nil, nil
	}

	key := c.cacheKey(start, end)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		c.logger.Warn("failed to get report from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var report analytics.Report
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("failed to unmarshal cached report", zap.Error(err))
		return nil, nil
	}

	c.logger.Debug("cache hit for report", zap.String("key", key))
	return &report, nil
}

// Set stores a report in the cache.
func (c *ReportCache) Set(ctx context.Context, start, end string, report *analytics.Report) error {
	if c.redis == nil {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("failed to marshal report for cache", zap.Error(err))
		return err
	}

	key := c.cacheKey(start, end)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to set report in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	c.logger.Debug("cached report", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate removes every cached report. Called when the underlying order
// list changes, since each cached range is derived from it.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c.redis == nil {
		return nil
	}

	keys, err := c.redis.Keys(ctx, "analytics:report:*").Result()
	if err != nil {
		c.logger.Warn("failed to find cache keys to invalidate", zap.Error(err))
		return err
	}

	if len(keys) > 0 {
		if err := c.redis.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("failed to invalidate report cache", zap.Error(err))
			return err
		}
		c.logger.Debug("invalidated report cache", zap.Int("keys_removed", len(keys)))
	}
	return nil
}
