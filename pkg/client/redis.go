package client

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 购物车/幂等锁/token 黑名单/账本事件共用一个连接池
func NewRedisClient(conf *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         conf.Redis.Addr(),
		Password:     conf.Redis.Password,
		Username:     conf.Redis.Username,
		DB:           conf.Redis.Database,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.L.Fatal("connect redis error", zap.String("addr", conf.Redis.Addr()), zap.Error(err))
	}
	log.L.Info("redis client success", zap.String("addr", conf.Redis.Addr()))
	return client
}
