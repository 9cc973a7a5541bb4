package main

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"Storefront/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if cfg.App.NodeID > 0 {
		snowflake.Init(cfg.App.NodeID)
	}

	cliApp := &cli.App{
		Name:  "accrual-worker",
		Usage: "consume order completed events and accrue affiliate commission",
		Commands: []*cli.Command{
			{
				Name:  "consume",
				Usage: "start the rocketmq consumer",
				Action: func(ctx *cli.Context) error {
					if !cfg.RocketMQ.Enabled() {
						return errors.New("rocketmq nameserver is not configured")
					}
					consumer, err := InitWorker(cfg)
					if err != nil {
						return err
					}
					runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
					defer stop()
					if err := consumer.Setup(runCtx); err != nil {
						return err
					}
					log.L.Info("accrual worker started", zap.String("topic", consumer.Topic))
					<-runCtx.Done()
					log.L.Info("accrual worker stopping")
					return nil
				},
			},
		},
	}
	if err := cliApp.RunContext(context.Background(), os.Args); err != nil {
		log.L.Fatal("failed to run worker", zap.Error(err))
	}
}
