package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CartSessionHeader = "X-Cart-Session"

// cartSession 没有会话时生成一个新的, 通过响应头回传给客户端
func cartSession(c *gin.Context) string {
	session := strings.TrimSpace(c.GetHeader(CartSessionHeader))
	if _, err := uuid.Parse(session); err != nil {
		session = uuid.NewString()
	}
	c.Header(CartSessionHeader, session)
	return session
}
