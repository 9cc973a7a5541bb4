package middleware

import (
	"Storefront/pkg/log"
	"Storefront/pkg/response"
	"Storefront/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery panic 转成统一的 500 响应, 堆栈写日志
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("handler panic",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("trace", utils.PanicTrace(r)),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Abort(c, response.CodeInternal, "internal error")
			}
		}()
		c.Next()
	}
}
