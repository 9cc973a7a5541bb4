package context

import (
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxJTI    = "jti"
)

// Wrap 统一处理 handler 返回的错误, 业务错误按业务码输出, 其他错误记录日志后返回 500
func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {
			if c.Writer.Written() {
				return
			}
			var be *response.BizError
			if errors.As(err, &be) {
				if be.Code == response.CodeUnavailable {
					log.L.Warn("dependency unavailable", zap.String("path", c.FullPath()), zap.Error(be.Err))
				}
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: response.CodeInternal,
				Msg:  "internal error",
			})
		}
	}
}

func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, errors.New("user_id 不存在")
	}

	uid, ok := v.(int64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

func GetEmail(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

func GetRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
