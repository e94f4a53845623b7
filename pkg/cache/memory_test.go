package cache

import (
	"context"
	"sync"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestGetMissesOnEmptyCache(t *testing.T) {
	c := NewMemoryCache()

	if _, ok := c.Get(context.Background(), day(1), day(5)); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestPutThenGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	dates := []time.Time{day(1), day(2)}

	c.Put(ctx, day(1), day(5), dates)

	got, ok := c.Get(ctx, day(1), day(5))
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got) != 2 || !got[0].Equal(day(1)) || !got[1].Equal(day(2)) {
		t.Errorf("unexpected cached dates: %v", got)
	}
}

func TestOverlappingWindowsAreIndependentEntries(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Put(ctx, day(1), day(5), []time.Time{day(1)})

	if _, ok := c.Get(ctx, day(2), day(5)); ok {
		t.Error("overlapping window must not hit a different key")
	}
	if _, ok := c.Get(ctx, day(1), day(4)); ok {
		t.Error("shorter window must not hit a different key")
	}
}

func TestInvalidateAllDropsEverything(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	c.Put(ctx, day(1), day(5), []time.Time{day(1)})
	c.Put(ctx, day(6), day(9), []time.Time{day(6)})

	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := c.Get(ctx, day(1), day(5)); ok {
		t.Error("expected miss after invalidation")
	}
	if _, ok := c.Get(ctx, day(6), day(9)); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestCachedSliceIsIsolatedFromCaller(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	dates := []time.Time{day(1), day(2)}
	c.Put(ctx, day(1), day(5), dates)
	dates[0] = day(9)

	got, _ := c.Get(ctx, day(1), day(5))
	if !got[0].Equal(day(1)) {
		t.Error("mutating the caller's slice must not affect the cached entry")
	}

	got[1] = day(9)
	again, _ := c.Get(ctx, day(1), day(5))
	if !again[1].Equal(day(2)) {
		t.Error("mutating a returned slice must not affect the cached entry")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put(ctx, day(i%5+1), day(i%5+3), []time.Time{day(i%5 + 1)})
			c.Get(ctx, day(i%5+1), day(i%5+3))
			if i%7 == 0 {
				_ = c.InvalidateAll(ctx)
			}
		}(i)
	}
	wg.Wait()
}
