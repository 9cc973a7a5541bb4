package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PromoClaimStorage 一次性活动领取记录, 每个邮箱每个活动只能领一次
type PromoClaimStorage struct {
	redis *redis.Client
}

func NewPromoClaimStorage(redis *redis.Client) *PromoClaimStorage {
	return &PromoClaimStorage{redis: redis}
}

// Claim 首次领取返回 true
func (p *PromoClaimStorage) Claim(ctx context.Context, email, promotion string) (bool, error) {
	return p.redis.SetNX(ctx, p.key(email, promotion), 1, 0).Result()
}

func (p *PromoClaimStorage) key(email, promotion string) string {
	return fmt.Sprintf("promo:claim:%s:%s", promotion, email)
}
