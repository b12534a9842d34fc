package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RedisRevocationStore keeps logged-out token ids with a TTL matching the token expiry,
// so Redis does the sweeping.
type RedisRevocationStore struct {
	client redis.Cmdable
	nowFn  func() time.Time
}

func NewRedisRevocationStore(client redis.Cmdable) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, nowFn: time.Now}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.nowFn())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revokedKey(tokenID uuid.UUID) string {
	return revokedKeyPrefix + tokenID.String()
}
