package service

import (
	"Storefront/pkg/log"
	"Storefront/pkg/pubsub"
	"Storefront/types"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const LedgerEventChannel = "storefront:ledger:events"

type LedgerHub = pubsub.Hub[types.LedgerEvent]

func NewLedgerHub(rdb *redis.Client) *LedgerHub {
	return pubsub.NewHub[types.LedgerEvent](rdb, LedgerEventChannel)
}

// LedgerNotifier 账本变更后广播, 发送失败只记日志
type LedgerNotifier struct {
	Hub *LedgerHub
}

func (n *LedgerNotifier) Notify(ctx context.Context, entity, action string, id int64) {
	if n == nil || n.Hub == nil {
		return
	}
	ev := types.LedgerEvent{
		ID:       uuid.NewString(),
		Entity:   entity,
		Action:   action,
		EntityID: id,
		At:       time.Now(),
	}
	if err := n.Hub.Publish(ctx, ev); err != nil {
		log.L.Warn("publish ledger event failed",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
}
