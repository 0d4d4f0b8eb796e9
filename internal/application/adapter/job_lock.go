// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// JobLock is a lease shared by every replica so a scheduled job runs once.
type JobLock interface {
	// Acquire takes the lease for key. It returns false when another holder owns it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives the lease back early.
	Release(ctx context.Context, key string) error
}
