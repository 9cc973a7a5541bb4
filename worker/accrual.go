// Package worker 消费订单完成消息, 为推广者结算返佣
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Storefront/pkg/log"
	"Storefront/service"
	"Storefront/types"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// maxReconsume 超过后不再走消息重投, 改由订单表上的 pending 标记交给补偿任务
const maxReconsume = 16

var errMalformed = errors.New("malformed order completed message")

type AccrualConsumer struct {
	MqConsumer rocketmq.PushConsumer
	Accrual    service.IAccrualService
	Topic      string
}

func (m *AccrualConsumer) Setup(ctx context.Context) error {
	log.L.Info("[MQ] 正在启动 accrual 消费者", zap.String("topic", m.Topic))
	err := m.MqConsumer.Subscribe(m.Topic, consumer.MessageSelector{}, m.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribe topic error: %w", err)
	}

	if err := m.MqConsumer.Start(); err != nil {
		log.L.Error("start mq accrual consumer error", zap.Error(err))
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := m.MqConsumer.Start(); err == nil {
						log.L.Info("[MQ] start accrual consumer successfully")
						return
					}
				}
			}
		}()
	}

	go func() {
		<-ctx.Done()
		log.L.Info("[MQ] 正在关闭 accrual 消费者...")
		_ = m.MqConsumer.Shutdown()
	}()
	return nil
}

func (m *AccrualConsumer) handleMessage(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		if err := m.consume(ctx, msg.Body); err != nil {
			if errors.Is(err, errMalformed) {
				log.L.Error("drop malformed message", zap.String("msg_id", msg.MsgId), zap.ByteString("body", msg.Body))
				continue
			}
			if msg.ReconsumeTimes >= maxReconsume {
				log.L.Error("accrual retries exhausted, handing over to reconcile",
					zap.String("msg_id", msg.MsgId),
					zap.Int32("reconsume_times", msg.ReconsumeTimes),
					zap.Error(err),
				)
				if err := m.requeue(ctx, msg.Body); err != nil {
					log.L.Error("requeue accrual failed", zap.String("msg_id", msg.MsgId), zap.Error(err))
					return consumer.ConsumeRetryLater, nil
				}
				continue
			}
			log.L.Warn("accrual failed, retry later", zap.String("msg_id", msg.MsgId), zap.Error(err))
			return consumer.ConsumeRetryLater, nil
		}
	}
	return consumer.ConsumeSuccess, nil
}

func (m *AccrualConsumer) consume(ctx context.Context, body []byte) error {
	ev, err := DecodeOrderCompleted(body)
	if err != nil {
		return err
	}
	res, err := m.Accrual.Accrue(ctx, ev)
	if err != nil {
		return err
	}
	log.L.Info("order completed consumed",
		zap.String("order_number", ev.OrderNumber),
		zap.String("status", string(res.Status)),
	)
	return nil
}

func (m *AccrualConsumer) requeue(ctx context.Context, body []byte) error {
	ev, err := DecodeOrderCompleted(body)
	if err != nil {
		return err
	}
	return m.Accrual.Requeue(ctx, ev.OrderNumber)
}

// DecodeOrderCompleted order_total 兼容字符串和数字两种写法
func DecodeOrderCompleted(body []byte) (types.OrderCompleted, error) {
	if !gjson.ValidBytes(body) {
		return types.OrderCompleted{}, errMalformed
	}
	doc := gjson.ParseBytes(body)
	ev := types.OrderCompleted{
		OrderNumber:   doc.Get("order_number").String(),
		AffiliateCode: doc.Get("affiliate_code").String(),
		CustomerEmail: doc.Get("customer_email").String(),
	}
	if ev.OrderNumber == "" {
		return types.OrderCompleted{}, fmt.Errorf("%w: order_number missing", errMalformed)
	}
	total, err := decimal.NewFromString(doc.Get("order_total").String())
	if err != nil {
		return types.OrderCompleted{}, fmt.Errorf("%w: order_total: %v", errMalformed, err)
	}
	ev.OrderTotal = total
	if at := doc.Get("completed_at"); at.Exists() {
		ev.CompletedAt = at.Time()
	}
	return ev, nil
}
