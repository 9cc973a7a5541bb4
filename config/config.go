package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app" envPrefix:"APP_"`
	Server   *Server         `json:"server" yaml:"server" envPrefix:"SERVER_"`
	Redis    *Redis          `json:"redis" yaml:"redis" envPrefix:"REDIS_"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql" envPrefix:"MYSQL_"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt" envPrefix:"JWT_"`
	Oss      *OssConfig      `json:"oss" yaml:"oss" envPrefix:"OSS_"`
	Nacos    *NacosConfig    `json:"nacos" yaml:"nacos" envPrefix:"NACOS_"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq" envPrefix:"ROCKETMQ_"`
	Smtp     *SmtpConfig     `json:"smtp" yaml:"smtp" envPrefix:"SMTP_"`
	Shop     *Shop           `json:"shop" yaml:"shop" envPrefix:"SHOP_"`
	Ledger   *LedgerConfig   `json:"ledger" yaml:"ledger" envPrefix:"LEDGER_"`
}

type Server struct {
	Http int `json:"http" yaml:"http" env:"HTTP"`
	// 优雅退出等待时间
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// New 读取配置文件. 环境变量 STOREFRONT_* 覆盖文件中的值, .env 文件可选.
func New(filename string) *Config {
	_ = godotenv.Load()

	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}
	return conf
}

// Parse 解析 yaml 内容并补齐默认值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.fill()

	if err := env.ParseWithOptions(&conf, env.Options{Prefix: "STOREFRONT_"}); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	c.Jwt.fill()
	if c.Oss == nil {
		c.Oss = &OssConfig{}
	}
	if c.Nacos == nil {
		c.Nacos = &NacosConfig{}
	}
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	if c.Smtp == nil {
		c.Smtp = &SmtpConfig{}
	}
	if c.Shop == nil {
		c.Shop = &Shop{}
	}
	c.Shop.fill()
	if c.Ledger == nil {
		c.Ledger = &LedgerConfig{}
	}
	c.Ledger.fill()
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
