// Package pubsub 基于 Redis 频道的跨实例事件广播
package pubsub

import (
	"Storefront/pkg/log"
	"Storefront/pkg/utils"
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Hub[T any] struct {
	redis   *redis.Client
	channel string
}

func NewHub[T any](redis *redis.Client, channel string) *Hub[T] {
	return &Hub[T]{redis: redis, channel: channel}
}

func (h *Hub[T]) Channel() string {
	return h.channel
}

func (h *Hub[T]) Publish(ctx context.Context, event T) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return h.redis.Publish(ctx, h.channel, payload).Err()
}

// Subscribe 注册回调, 返回后订阅已生效. 返回的 unsubscribe 可重复调用
func (h *Hub[T]) Subscribe(ctx context.Context, handler func(T)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(ctx)
	ps := h.redis.Subscribe(ctx, h.channel)
	if _, err := ps.Receive(ctx); err != nil {
		log.L.Warn("pubsub subscribe not confirmed", zap.String("channel", h.channel), zap.Error(err))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				h.dispatch(msg.Payload, handler)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			_ = ps.Close()
			<-done
		})
	}
}

func (h *Hub[T]) dispatch(payload string, handler func(T)) {
	defer func() {
		if r := recover(); r != nil {
			log.L.Error("pubsub handler panic", zap.String("channel", h.channel), zap.String("trace", utils.PanicTrace(r)))
		}
	}()
	var event T
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.L.Warn("pubsub drop malformed event", zap.String("channel", h.channel), zap.Error(err))
		return
	}
	handler(event)
}
