package handler

import (
	"context"
	"net/http"
	"time"

	"Storefront/ledger"
	"Storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Health struct {
	Ledger ledger.Ledger
	Redis  *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/healthz", h.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Check 账本走本地存储时同样视为健康, 只报告当前使用的实现
func (h *Health) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"ledger": h.Ledger.Name(), "redis": "ok"}
	code := http.StatusOK
	if err := h.Redis.Ping(ctx).Err(); err != nil {
		status["redis"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := h.Ledger.Ping(ctx); err != nil {
		status["ledger_error"] = err.Error()
		code = http.StatusServiceUnavailable
	}
	if code != http.StatusOK {
		c.JSON(code, response.Response{Code: response.CodeUnavailable, Msg: "degraded", Data: status})
		return
	}
	c.JSON(code, response.Response{Code: response.CodeOK, Msg: "ok", Data: status})
}
