package handler

import (
	"net/http"
	"time"

	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LedgerStream 管理后台实时订阅账本变更
type LedgerStream struct {
	Jwt         *config.Jwt
	AuthService service.IAuthService
	Hub         *service.LedgerHub
}

func (h *LedgerStream) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/admin/stream",
		queryToken,
		middleware.Auth([]byte(h.Jwt.Secret), h.AuthService),
		middleware.RequireRole(models.RoleAdmin),
		h.HandleWS,
	)
}

// queryToken 浏览器建立 websocket 时无法设置请求头, 允许 access_token 查询参数
func queryToken(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if token := c.Query("access_token"); token != "" {
			c.Request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	c.Next()
}

func (h *LedgerStream) HandleWS(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events := make(chan types.LedgerEvent, 64)
	unsubscribe := h.Hub.Subscribe(c.Request.Context(), func(ev types.LedgerEvent) {
		select {
		case events <- ev:
		default:
			// 客户端消费太慢时丢弃, 前端收到后续事件会整体刷新
			log.L.Warn("ledger stream full, event dropped", zap.String("event_id", ev.ID))
		}
	})
	defer unsubscribe()

	// 读循环只处理心跳和断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case ev := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
