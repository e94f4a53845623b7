package cache

import (
	"context"
	"encoding/json"
	"time"

	"campsite/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "availability:"

// RedisCache is a shared AvailabilityCache so every service replica observes
// the same invalidation. Read errors degrade to cache misses; InvalidateAll
// reports failure so callers can at least log a drop that did not happen.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *RedisCache) Get(ctx context.Context, first, last time.Time) ([]time.Time, bool) {
	payload, err := c.rdb.Get(ctx, redisKeyPrefix+windowKey(first, last)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Availability cache read failed, treating as miss", "error", err)
		}
		return nil, false
	}

	var dates []time.Time
	if err := json.Unmarshal(payload, &dates); err != nil {
		c.log.Warn("Availability cache entry is corrupt, treating as miss", "error", err)
		return nil, false
	}
	return dates, true
}

func (c *RedisCache) Put(ctx context.Context, first, last time.Time, dates []time.Time) {
	payload, err := json.Marshal(dates)
	if err != nil {
		c.log.Warn("Failed to encode availability cache entry", "error", err)
		return
	}

	if err := c.rdb.Set(ctx, redisKeyPrefix+windowKey(first, last), payload, c.ttl).Err(); err != nil {
		c.log.Warn("Availability cache write failed", "error", err)
	}
}

func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
