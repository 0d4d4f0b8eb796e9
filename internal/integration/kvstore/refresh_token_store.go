// Package kvstore implements the Redis-backed stores.
package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "auth:refresh:"

// RefreshTokenStore keeps the ids of live refresh tokens. A token whose id is
// absent was revoked or has expired.
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a new RefreshTokenStore.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save records the token id until ttl elapses.
func (s *RefreshTokenStore) Save(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenPrefix+tokenID, userID.String(), ttl).Err()
}

// Exists reports whether the token id is still live.
func (s *RefreshTokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, refreshTokenPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes the token id. Revoking an unknown id is not an error.
func (s *RefreshTokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, refreshTokenPrefix+tokenID).Err()
}
