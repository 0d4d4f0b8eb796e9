// Package kvstore implements the Redis-backed stores.
package kvstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

const jobLockPrefix = "job:lock:"

// releaseScript deletes the lease only when this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// JobLock implements adapter.JobLock with SET NX leases.
type JobLock struct {
	client *redis.Client
	owner  string
}

// NewJobLock creates a JobLock whose leases are tagged with a random owner id.
func NewJobLock(client *redis.Client) adapter.JobLock {
	return &JobLock{client: client, owner: uuid.NewString()}
}

// Acquire takes the lease for key when nobody holds it.
func (l *JobLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, jobLockPrefix+key, l.owner, ttl).Result()
}

// Release gives the lease back if it is still ours.
func (l *JobLock) Release(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, l.client, []string{jobLockPrefix + key}, l.owner).Err()
}
