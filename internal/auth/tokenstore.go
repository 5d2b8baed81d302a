package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const refreshKeyPrefix = "refresh:"

// TokenStore is the allowlist of live refresh tokens, keyed by jti.
// A refresh token that is not in the store is treated as revoked.
type TokenStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, jti string) (int64, error)
	Delete(ctx context.Context, jti string) error
}

var ErrTokenNotFound = fmt.Errorf("refresh token not found")

type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, jti string) (int64, error) {
	val, err := s.client.Get(ctx, refreshKeyPrefix+jti).Result()
	if err == redis.Nil {
		return 0, ErrTokenNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *RedisTokenStore) Delete(ctx context.Context, jti string) error {
	return s.client.Del(ctx, refreshKeyPrefix+jti).Err()
}
