package worker

import (
	"Storefront/config"
	"Storefront/pkg/rocketmq"
	"Storefront/service"
)

func NewAccrualConsumer(conf *config.RocketMQConfig, accrual service.IAccrualService) (*AccrualConsumer, error) {
	c, err := rocketmq.InitConsumer(conf)
	if err != nil {
		return nil, err
	}
	return &AccrualConsumer{MqConsumer: c, Accrual: accrual, Topic: conf.Topic()}, nil
}
