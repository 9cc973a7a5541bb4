package server

import (
	"Storefront/config"
	"Storefront/ledger"
	"Storefront/middleware"
	"Storefront/pkg/log"
	"Storefront/service"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider struct {
	Config     *config.Config
	Engine     *gin.Engine
	Ledger     ledger.Ledger
	Reconciler *service.AccrualReconciler
}

var (
	once     sync.Once
	serverId string
)

// GetServerId 本机内网 IP + 端口, 用于日志区分实例
func GetServerId(port int) string {
	once.Do(func() {
		ip, err := getLocalIP()
		if err != nil {
			ip = "127.0.0.1"
		}
		serverId = fmt.Sprintf("%s:%d", ip, port)
	})
	return serverId
}

func getLocalIP() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		ipnet, ok := address.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}
		return ipnet.IP.String(), nil
	}
	return "", errors.New("no ip address found")
}

func NewGinEngine(cfg *config.Config, h *Handlers) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(CORSMiddleware())
	r.Use(middleware.GinZap(), middleware.PrometheusMiddleware(), middleware.Recovery())
	h.Health.RegisterRouter(r)
	api := r.Group("/api")
	h.Auth.RegisterRouter(api)
	h.Promo.RegisterRouter(api)
	h.Cart.RegisterRouter(api)
	h.Product.RegisterRouter(api)
	h.Order.RegisterRouter(api)
	h.Affiliate.RegisterRouter(api)
	h.Report.RegisterRouter(api)
	h.Stream.RegisterRouter(api)
	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Content-Length, X-Requested-With, X-Cart-Session")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		// 前端需要读取新分配的购物车会话
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cart-Session, X-Report-Location, Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func Run(ctx *cli.Context, app *AppProvider) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)

	sid := GetServerId(app.Config.Server.Http)
	log.L.Info("server starting", zap.String("serverId", sid),
		zap.Int("port", app.Config.Server.Http),
		zap.String("env", app.Config.App.Env),
		zap.String("ledger", app.Ledger.Name()),
	)
	// 启动时账本不可用只告警, 请求会返回 503 直到恢复
	if err := app.Ledger.Ping(ctx.Context); err != nil {
		log.L.Warn("ledger unavailable at startup", zap.String("ledger", app.Ledger.Name()), zap.Error(err))
	}

	return run(c, eg, groupCtx, app)
}

func run(c chan os.Signal, eg *errgroup.Group, ctx context.Context, app *AppProvider) error {
	sid := GetServerId(app.Config.Server.Http)
	serv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Config.Server.Http),
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if app.Reconciler != nil {
		eg.Go(func() error {
			return app.Reconciler.Run(ctx)
		})
	}

	eg.Go(func() error {
		defer func() {
			log.L.Info("server stopping", zap.String("serverId", sid))

			timeCtx, timeCancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
			defer timeCancel()

			if err := serv.Shutdown(timeCtx); err != nil {
				log.L.Warn("server shutdown", zap.String("serverId", sid), zap.Error(err))
			}
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c:
			return nil
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.L.Error("server exited", zap.String("serverId", sid), zap.Error(err))
		return err
	}

	log.L.Info("server stopped", zap.String("serverId", sid))
	return nil
}
