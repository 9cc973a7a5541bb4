package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret" env:"SECRET"`
	// ExpiresIn access token 有效期(秒)
	ExpiresIn int64 `json:"expires_in" yaml:"expires_in" env:"EXPIRES_IN"`
}

func (j *Jwt) fill() {
	if j.ExpiresIn <= 0 {
		j.ExpiresIn = 7200
	}
}

func ProvideJwtConfig(cfg *Config) *Jwt {
	return cfg.Jwt
}
