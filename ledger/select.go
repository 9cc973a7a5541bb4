package ledger

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 3 * time.Second

// Select 启动时探测一次远端存储, 决定整个进程使用的账本实现
func Select(ctx context.Context, mode string, remote, local Ledger) (Ledger, error) {
	var chosen Ledger
	switch mode {
	case config.LedgerModeRemote:
		chosen = remote
	case config.LedgerModeLocal:
		chosen = local
	case config.LedgerModeFallback:
		chosen = NewFallback(remote, local)
	case config.LedgerModeAuto, "":
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := remote.Ping(probeCtx); err != nil {
			log.L.Warn("remote ledger probe failed, using local ledger", zap.Error(err))
			chosen = local
		} else {
			chosen = remote
		}
	default:
		return nil, fmt.Errorf("unknown ledger mode %q", mode)
	}
	log.L.Info("ledger selected", zap.String("mode", mode), zap.String("ledger", chosen.Name()))
	return chosen, nil
}

// Provide 按配置构建账本, 供 wire 使用
func Provide(conf *config.LedgerConfig, remote *Remote) (Ledger, error) {
	local, err := NewLocal(conf.LocalPath)
	if err != nil {
		return nil, err
	}
	return Select(context.Background(), conf.Mode, remote, local)
}
