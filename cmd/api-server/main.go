package main

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"Storefront/pkg/migrate"
	"Storefront/pkg/server"
	"Storefront/pkg/snowflake"
	"Storefront/service"
	"fmt"
	"io"
	"os"

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
		Name:  "api-server",
		Usage: "storefront http api",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					appProvider, err := InitServer(cfg)
					if err != nil {
						return err
					}
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "down", Usage: "roll back N versions instead of migrating up"},
				},
				Action: func(ctx *cli.Context) error {
					if n := ctx.Int("down"); n > 0 {
						return migrate.Down(cfg.MySQL.MigrateDsn(), n)
					}
					return migrate.Up(cfg.MySQL.MigrateDsn())
				},
			},
			{
				Name:  "report",
				Usage: "export the commission report as csv",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "YYYY-MM-DD, inclusive"},
					&cli.StringFlag{Name: "to", Required: true, Usage: "YYYY-MM-DD, exclusive"},
					&cli.StringFlag{Name: "out", Usage: "output file, stdout when empty"},
				},
				Action: func(ctx *cli.Context) error {
					from, to, err := service.ParseReportRange(ctx.String("from"), ctx.String("to"))
					if err != nil {
						return err
					}
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					var w io.Writer = os.Stdout
					if out := ctx.String("out"); out != "" {
						f, err := os.Create(out)
						if err != nil {
							return err
						}
						defer f.Close()
						w = f
					}
					location, err := cmds.Reports.Export(ctx.Context, from, to, w)
					if err != nil {
						return err
					}
					if location != "" {
						log.L.Info("report uploaded", zap.String("location", location))
					}
					return nil
				},
			},
			{
				Name:  "grant-admin",
				Usage: "give an existing user the admin role",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: func(ctx *cli.Context) error {
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					return cmds.Auth.GrantAdmin(ctx.Context, ctx.String("email"))
				},
			},
			{
				Name:  "reconcile",
				Usage: "accrue commission for orders still marked pending",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "older-than", Value: 0, Usage: "only orders placed before now minus this"},
					&cli.IntFlag{Name: "limit", Value: 500},
				},
				Action: func(ctx *cli.Context) error {
					cmds, err := InitCommands(cfg)
					if err != nil {
						return err
					}
					res, err := cmds.Accrual.Reconcile(ctx.Context, ctx.Duration("older-than"), ctx.Int("limit"))
					if err != nil {
						return err
					}
					fmt.Fprintf(os.Stdout, "scanned=%d recorded=%d duplicate=%d skipped=%d failed=%d\n",
						res.Scanned, res.Recorded, res.Duplicate, res.Skipped, len(res.Failed))
					for _, number := range res.Failed {
						fmt.Fprintln(os.Stdout, "failed:", number)
					}
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to run command", zap.Error(err))
	}
}
