package service

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"Storefront/pkg/rocketmq"
	"Storefront/types"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// CompletionTrigger 订单落库后触发返佣, 每个订单只触发一次
type CompletionTrigger interface {
	Fire(ctx context.Context, ev types.OrderCompleted) error
}

// DirectTrigger 进程内同步结算
type DirectTrigger struct {
	Accrual IAccrualService
}

func (d *DirectTrigger) Fire(ctx context.Context, ev types.OrderCompleted) error {
	res, err := d.Accrual.Accrue(ctx, ev)
	if err != nil {
		return err
	}
	log.L.Debug("order completed handled in process",
		zap.String("order_number", ev.OrderNumber),
		zap.String("status", string(res.Status)),
	)
	return nil
}

type MessageSender interface {
	SendMsg(ctx context.Context, topic, key string, body []byte) error
}

// MQTrigger 投递到 RocketMQ 由 accrual-worker 消费, 投递失败时退回 Fallback
type MQTrigger struct {
	Sender   MessageSender
	Topic    string
	Fallback CompletionTrigger
}

func (m *MQTrigger) Fire(ctx context.Context, ev types.OrderCompleted) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = m.Sender.SendMsg(ctx, m.Topic, ev.OrderNumber, body)
	if err == nil {
		return nil
	}
	log.L.Error("publish order completed failed",
		zap.String("topic", m.Topic),
		zap.String("order_number", ev.OrderNumber),
		zap.Error(err),
	)
	if m.Fallback == nil {
		return err
	}
	return m.Fallback.Fire(ctx, ev)
}

func ProvideCompletionTrigger(mqConf *config.RocketMQConfig, accrual IAccrualService) CompletionTrigger {
	direct := &DirectTrigger{Accrual: accrual}
	if !mqConf.Enabled() {
		return direct
	}
	mq, err := rocketmq.NewRocketmq(mqConf)
	if err != nil {
		log.L.Warn("rocketmq producer unavailable, accrue in process", zap.Error(err))
		return direct
	}
	return &MQTrigger{Sender: mq, Topic: mqConf.Topic(), Fallback: direct}
}
