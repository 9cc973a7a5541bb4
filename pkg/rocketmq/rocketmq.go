package rocketmq

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

type Rocketmq struct {
	RocketmqProducer rocketmq.Producer
}

func init() {
	rlog.SetLogLevel("error")
}

func InitProducer(cfg *config.RocketMQConfig) (rocketmq.Producer, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer(cfg.NameServer),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, err
	}
	if err = p.Start(); err != nil {
		return nil, err
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))
	return p, nil
}

func InitConsumer(cfg *config.RocketMQConfig) (rocketmq.PushConsumer, error) {
	return rocketmq.NewPushConsumer(
		consumer.WithNameServer(cfg.NameServer),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumeFromWhere(consumer.ConsumeFromLastOffset),
	)
}

func NewRocketmq(cfg *config.RocketMQConfig) (*Rocketmq, error) {
	p, err := InitProducer(cfg)
	if err != nil {
		return nil, err
	}
	return &Rocketmq{RocketmqProducer: p}, nil
}

// SendMsg 同步发送, key 用于消息追踪和去重
func (p *Rocketmq) SendMsg(ctx context.Context, topic, key string, body []byte) error {
	msg := primitive.NewMessage(topic, body)
	if key != "" {
		msg.WithKeys([]string{key})
	}
	res, err := p.RocketmqProducer.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("topic", topic), zap.String("msg_id", res.MsgID))
	return nil
}

func (p *Rocketmq) Shutdown() error {
	return p.RocketmqProducer.Shutdown()
}
