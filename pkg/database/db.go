package database

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接. 不在启动时 ping, 连接失败由账本探测决定是否切换到本地存储
func NewDB(conf *config.Config) *gorm.DB {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if conf.Debug() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       conf.MySQL.Dsn(),
		SkipInitializeWithVersion: true,
		DefaultStringSize:         255,
	}), &gorm.Config{
		DisableAutomaticPing:   true,
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.L.Fatal("failed to open database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	log.L.Info("database pool ready", zap.String("host", conf.MySQL.Host))
	return db
}
