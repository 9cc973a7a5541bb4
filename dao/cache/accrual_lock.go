package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	accrualLockTTL = 2 * time.Minute
	accrualDoneTTL = 30 * 24 * time.Hour
)

// AccrualLockStorage 返佣幂等: done + lock 两段式
type AccrualLockStorage struct {
	redis *redis.Client
}

func NewAccrualLockStorage(redis *redis.Client) *AccrualLockStorage {
	return &AccrualLockStorage{redis: redis}
}

func (a *AccrualLockStorage) IsDone(ctx context.Context, orderNumber string) (bool, error) {
	n, err := a.redis.Exists(ctx, a.doneKey(orderNumber)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (a *AccrualLockStorage) MarkDone(ctx context.Context, orderNumber string) error {
	return a.redis.Set(ctx, a.doneKey(orderNumber), 1, accrualDoneTTL).Err()
}

// Lock 抢占处理权, 失败说明其他实例正在处理
func (a *AccrualLockStorage) Lock(ctx context.Context, orderNumber string) (bool, error) {
	return a.redis.SetNX(ctx, a.lockKey(orderNumber), 1, accrualLockTTL).Result()
}

func (a *AccrualLockStorage) Unlock(ctx context.Context, orderNumber string) error {
	return a.redis.Del(ctx, a.lockKey(orderNumber)).Err()
}

func (a *AccrualLockStorage) doneKey(orderNumber string) string {
	return fmt.Sprintf("accrual:done:%s", orderNumber)
}

func (a *AccrualLockStorage) lockKey(orderNumber string) string {
	return fmt.Sprintf("accrual:lock:%s", orderNumber)
}
