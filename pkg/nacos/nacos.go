package nacos

import (
	"Storefront/config"
	"Storefront/pkg/log"

	"github.com/nacos-group/nacos-sdk-go/v2/clients"
	"github.com/nacos-group/nacos-sdk-go/v2/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/v2/common/constant"
	"github.com/nacos-group/nacos-sdk-go/v2/vo"
	"go.uber.org/zap"
)

func NewConfigClient(cfg *config.NacosConfig) (config_client.IConfigClient, error) {
	sc := []constant.ServerConfig{
		*constant.NewServerConfig(cfg.Address, cfg.Port),
	}
	cc := constant.ClientConfig{
		NamespaceId:         cfg.Namespace,
		TimeoutMs:           cfg.TimeoutMs,
		NotLoadCacheAtStart: true,
		LogDir:              "/tmp/nacos/log",
		CacheDir:            "/tmp/nacos/cache",
		LogLevel:            cfg.LogLevel,
		Username:            cfg.User,
		Password:            cfg.Password,
	}

	cli, err := clients.NewConfigClient(vo.NacosClientParam{
		ClientConfig:  &cc,
		ServerConfigs: sc,
	})
	if err != nil {
		log.L.Warn("nacos config client unavailable", zap.Error(err))
		return nil, err
	}
	log.L.Info("nacos config client created", zap.String("address", cfg.Address))
	return cli, nil
}

// Watch 读取配置当前值并监听变更
func Watch(cli config_client.IConfigClient, cfg *config.NacosConfig, onChange func(content string)) (string, error) {
	param := vo.ConfigParam{DataId: cfg.DataID, Group: cfg.Group}
	content, err := cli.GetConfig(param)
	if err != nil {
		return "", err
	}
	param.OnChange = func(namespace, group, dataId, data string) {
		log.L.Info("nacos config changed", zap.String("data_id", dataId), zap.String("group", group))
		onChange(data)
	}
	if err := cli.ListenConfig(param); err != nil {
		return content, err
	}
	return content, nil
}
