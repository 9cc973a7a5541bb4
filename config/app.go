package config

type App struct {
	Name  string `json:"name" yaml:"name" env:"NAME"`
	Env   string `json:"env" yaml:"env" env:"ENV"`
	Debug bool   `json:"debug" yaml:"debug" env:"DEBUG"`
	// HashSalt 订单号 hashids 盐值
	HashSalt string `json:"hash_salt" yaml:"hash_salt" env:"HASH_SALT"`
	NodeID   int64  `json:"node_id" yaml:"node_id" env:"NODE_ID"`
}

func ProvideAppConfig(cfg *Config) *App {
	return cfg.App
}
