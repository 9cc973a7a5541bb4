package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 已注销的 token, 保存到其自然过期为止
type TokenBlacklist struct {
	redis *redis.Client
}

func NewTokenBlacklist(redis *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{redis: redis}
}

func (t *TokenBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return t.redis.Set(ctx, t.key(jti), 1, ttl).Err()
}

func (t *TokenBlacklist) IsBlocked(ctx context.Context, jti string) (bool, error) {
	n, err := t.redis.Exists(ctx, t.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *TokenBlacklist) key(jti string) string {
	return fmt.Sprintf("auth:blacklist:%s", jti)
}
