package cache

import (
	"Storefront/config"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

func ProvideCartStorage(redis *redis.Client, shop *config.Shop) *CartStorage {
	return NewCartStorage(redis, shop.CartTTL)
}

var ProviderSet = wire.NewSet(
	ProvideCartStorage,
	NewPromoClaimStorage,
	NewAccrualLockStorage,
	NewTokenBlacklist,
)
