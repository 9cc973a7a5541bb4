//go:build wireinject
// +build wireinject

package main

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/handler"
	"Storefront/ledger"
	"Storefront/pkg/client"
	"Storefront/pkg/database"
	"Storefront/pkg/mailer"
	"Storefront/pkg/oss"
	"Storefront/pkg/server"
	"Storefront/service"

	"github.com/google/wire"
)

var configSet = wire.NewSet(
	config.ProvideAppConfig,
	config.ProvideJwtConfig,
	config.ProvideShopConfig,
	config.ProvideLedgerConfig,
	config.ProvideNacosConfig,
	config.ProvideOssConfig,
	config.ProvideRocketMQConfig,
	config.ProvideSmtpConfig,
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		configSet,
		database.NewDB,
		client.NewRedisClient,
		mailer.NewSender,
		oss.NewUploader,

		dao.ProviderSet,
		cache.ProviderSet,
		ledger.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Health), "*"),
		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Promo), "*"),
		wire.Struct(new(handler.Cart), "*"),
		wire.Struct(new(handler.ProductHandler), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Affiliate), "*"),
		wire.Struct(new(handler.Report), "*"),
		wire.Struct(new(handler.LedgerStream), "*"),

		server.NewGinEngine,
		wire.Struct(new(server.Handlers), "*"),
		wire.Struct(new(server.AppProvider), "*"),
	)
	return nil, nil
}

func InitCommands(cfg *config.Config) (*Commands, error) {
	wire.Build(
		config.ProvideJwtConfig,
		config.ProvideLedgerConfig,
		config.ProvideOssConfig,
		config.ProvideShopConfig,
		config.ProvideSmtpConfig,
		database.NewDB,
		client.NewRedisClient,
		oss.NewUploader,
		mailer.NewSender,
		dao.NewUsers,
		dao.NewAffiliate,
		dao.NewTransaction,
		dao.NewOrder,
		cache.NewTokenBlacklist,
		cache.NewAccrualLockStorage,
		ledger.ProviderSet,
		service.NewLedgerHub,
		wire.Struct(new(service.LedgerNotifier), "*"),
		wire.Struct(new(service.ReportService), "*"),
		wire.Struct(new(service.AuthService), "*"),
		wire.Struct(new(service.AccrualService), "*"),
		wire.Struct(new(Commands), "*"),
	)
	return nil, nil
}
