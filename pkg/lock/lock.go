// Package lock provides an exclusive, timeout-bounded advisory lock keyed by
// a logical resource id. Acquisition is a non-blocking try, retried with
// exponential backoff; it never blocks indefinitely.
package lock

import (
	"context"
	"errors"
	"time"

	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/google/uuid"
)

// ErrNotAcquired is returned when the lock could not be acquired within the
// configured attempts. Callers treat it as a transient conflict.
var ErrNotAcquired = errors.New("lock not acquired")

// Store persists lock ownership. Acquire must fail with ErrNotAcquired when
// another holder owns the id; Release must only remove the caller's own lock.
type Store interface {
	Acquire(ctx context.Context, l *model.ReservationLock) error
	Release(ctx context.Context, id, owner string) error
}

// Manager runs an operation under a named exclusive lock.
type Manager interface {
	WithLock(ctx context.Context, lockID string, timeout time.Duration, fn func(ctx context.Context) error) error
}

type Options struct {
	// MaxAttempts bounds acquisition tries. Zero means 3.
	MaxAttempts int
	// BackoffBase is the first retry delay; it doubles per attempt, capped at
	// the per-call timeout. Zero means 100ms.
	BackoffBase time.Duration
	// TTL is written on the lock document so crashed holders cannot leak the
	// lock forever. Zero means 10s.
	TTL time.Duration
}

type manager struct {
	store       Store
	maxAttempts int
	backoffBase time.Duration
	ttl         time.Duration
	log         *logger.Logger
}

func NewManager(store Store, opts Options, log *logger.Logger) Manager {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 100 * time.Millisecond
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	return &manager{
		store:       store,
		maxAttempts: opts.MaxAttempts,
		backoffBase: opts.BackoffBase,
		ttl:         opts.TTL,
		log:         log,
	}
}

func (m *manager) WithLock(ctx context.Context, lockID string, timeout time.Duration, fn func(ctx context.Context) error) error {
	owner := uuid.NewString()

	acquireCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := m.acquire(acquireCtx, lockID, owner, timeout); err != nil {
		return err
	}

	defer func() {
		// Release must not inherit a canceled request context.
		releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer releaseCancel()
		if err := m.store.Release(releaseCtx, lockID, owner); err != nil {
			m.log.Warn("Failed to release lock, TTL expiry will reclaim it",
				"lock_id", lockID,
				"error", err,
			)
		}
	}()

	return fn(ctx)
}

func (m *manager) acquire(ctx context.Context, lockID, owner string, timeout time.Duration) error {
	backoff := m.backoffBase

	for attempt := 1; ; attempt++ {
		err := m.store.Acquire(ctx, &model.ReservationLock{
			ID:        lockID,
			Owner:     owner,
			ExpiresAt: time.Now().Add(m.ttl),
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotAcquired) {
			return err
		}
		if attempt >= m.maxAttempts {
			m.log.Warn("Lock acquisition attempts exhausted",
				"lock_id", lockID,
				"attempts", attempt,
			)
			return ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return ErrNotAcquired
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > timeout {
			backoff = timeout
		}
	}
}
