// Package locker provides distributed locking for coordinating work across
// multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates mutual exclusion across instances.
// Implementations must be safe for concurrent use.
//
// The ttl doubles as the lock's lifetime: for mutual exclusion set it to the
// operation timeout, for cooldown-style rate limiting set it to the desired
// cooldown period and simply never release on success.
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. It returns true
	// when the lock was taken and false when another instance holds it.
	// The lock expires on its own after ttl if never released.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives up the lock identified by key. Releasing a lock this
	// instance does not own is a no-op, not an error.
	Release(ctx context.Context, key string) error
}
