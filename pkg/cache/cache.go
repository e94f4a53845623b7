// Package cache provides the availability cache used by the reservation
// engine. Entries are keyed by the literal (first, last) query window; two
// overlapping-but-different windows are independent entries. Invalidation is
// coarse: every successful write drops the whole cache. Correctness never
// depends on the cache; it is a disposable read accelerator.
package cache

import (
	"context"
	"time"
)

const keyLayout = "2006-01-02"

// AvailabilityCache caches the available dates computed for a query window.
type AvailabilityCache interface {
	// Get returns the cached dates for the window, or false on a miss.
	Get(ctx context.Context, first, last time.Time) ([]time.Time, bool)
	// Put stores the dates for the window. Best effort.
	Put(ctx context.Context, first, last time.Time, dates []time.Time)
	// InvalidateAll drops every cached window.
	InvalidateAll(ctx context.Context) error
}

func windowKey(first, last time.Time) string {
	return first.Format(keyLayout) + ":" + last.Format(keyLayout)
}
