package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver" env:"NAMESERVER"`

	Producer Producer `yaml:"producer"`

	Consumer Consumer `yaml:"consumer"`

	// OrderCompletedTopic 订单完成事件主题
	OrderCompletedTopic string `yaml:"order_completed_topic"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Consumer struct {
	Group string `yaml:"group"`
}

// Enabled 未配置 nameserver 时结算在进程内同步完成
func (r *RocketMQConfig) Enabled() bool {
	return r != nil && len(r.NameServer) > 0
}

func (r *RocketMQConfig) Topic() string {
	if r.OrderCompletedTopic == "" {
		return "order_completed"
	}
	return r.OrderCompletedTopic
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
