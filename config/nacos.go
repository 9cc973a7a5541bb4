package config

type NacosConfig struct {
	Address   string `yaml:"address" env:"ADDRESS"`
	Port      uint64 `yaml:"port" env:"PORT"`
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
	User      string `yaml:"user" env:"USER"`
	Password  string `yaml:"password" env:"PASSWORD"`
	TimeoutMs uint64 `yaml:"timeout_ms"`
	LogLevel  string `yaml:"log_level"`
	// DataID/Group 折扣码表所在的配置项
	DataID string `yaml:"data_id"`
	Group  string `yaml:"group"`
}

func (n *NacosConfig) Enabled() bool {
	return n != nil && n.Address != "" && n.DataID != ""
}

func ProvideNacosConfig(cfg *Config) *NacosConfig {
	return cfg.Nacos
}
