package config

const (
	LedgerModeAuto     = "auto"
	LedgerModeRemote   = "remote"
	LedgerModeLocal    = "local"
	LedgerModeFallback = "fallback"
)

type LedgerConfig struct {
	// Mode auto: 启动时探测 MySQL, 不可用则使用本地存储
	Mode      string `yaml:"mode" env:"MODE"`
	LocalPath string `yaml:"local_path" env:"LOCAL_PATH"`
}

func (l *LedgerConfig) fill() {
	if l.Mode == "" {
		l.Mode = LedgerModeAuto
	}
	if l.LocalPath == "" {
		l.LocalPath = "data/ledger.json"
	}
}

func ProvideLedgerConfig(cfg *Config) *LedgerConfig {
	return cfg.Ledger
}
