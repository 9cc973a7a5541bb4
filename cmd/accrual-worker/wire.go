//go:build wireinject
// +build wireinject

package main

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/ledger"
	"Storefront/pkg/client"
	"Storefront/pkg/database"
	"Storefront/pkg/mailer"
	"Storefront/service"
	"Storefront/worker"

	"github.com/google/wire"
)

func InitWorker(cfg *config.Config) (*worker.AccrualConsumer, error) {
	wire.Build(
		config.ProvideShopConfig,
		config.ProvideLedgerConfig,
		config.ProvideRocketMQConfig,
		config.ProvideSmtpConfig,
		database.NewDB,
		client.NewRedisClient,
		mailer.NewSender,
		dao.NewAffiliate,
		dao.NewTransaction,
		dao.NewOrder,
		cache.NewAccrualLockStorage,
		ledger.ProviderSet,
		service.NewLedgerHub,
		wire.Struct(new(service.LedgerNotifier), "*"),
		wire.Struct(new(service.AccrualService), "*"),
		wire.Bind(new(service.IAccrualService), new(*service.AccrualService)),
		worker.NewAccrualConsumer,
	)
	return nil, nil
}
