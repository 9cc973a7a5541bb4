package config

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint" env:"ENDPOINT"`
	Region          string `json:"region" yaml:"region" env:"REGION"`
	Bucket          string `json:"bucket" yaml:"bucket" env:"BUCKET"`
	AccessKeyID     string `json:"ak" yaml:"ak" env:"AK"`
	AccessKeySecret string `json:"sk" yaml:"sk" env:"SK"`
}

// Enabled 未配置 bucket 时报表只在本地输出
func (o *OssConfig) Enabled() bool {
	return o != nil && o.Bucket != "" && o.Region != ""
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
