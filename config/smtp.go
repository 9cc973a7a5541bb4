package config

type SmtpConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	From     string `yaml:"from" env:"FROM"`
}

func (s *SmtpConfig) Enabled() bool {
	return s != nil && s.Host != "" && s.From != ""
}

func ProvideSmtpConfig(cfg *Config) *SmtpConfig {
	return cfg.Smtp
}
