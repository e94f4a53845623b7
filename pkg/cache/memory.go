package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local AvailabilityCache. Suitable for single-node
// deployments and tests; multi-node deployments should use the Redis cache so
// invalidation reaches every replica.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]time.Time),
	}
}

func (c *MemoryCache) Get(_ context.Context, first, last time.Time) ([]time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dates, ok := c.entries[windowKey(first, last)]
	if !ok {
		return nil, false
	}
	out := make([]time.Time, len(dates))
	copy(out, dates)
	return out, true
}

func (c *MemoryCache) Put(_ context.Context, first, last time.Time, dates []time.Time) {
	stored := make([]time.Time, len(dates))
	copy(stored, dates)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[windowKey(first, last)] = stored
}

func (c *MemoryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]time.Time)
	return nil
}
