package middleware

import (
	"context"
	"strings"
	"time"

	ctxkeys "Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/log"
	"Storefront/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CtxExpiresAt = "expires_at"

// RevocationChecker 退出登录的 token 在过期前不可再用
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func authenticate(c *gin.Context, secret []byte, checker RevocationChecker) (int, string) {
	token, ok := bearer(c)
	if !ok {
		return response.CodeUnauthorized, "缺少 Authorization 或格式错误"
	}
	claims, err := jwt.ParseToken(secret, "access", token)
	if err != nil {
		return response.CodeUnauthorized, err.Error()
	}
	if checker != nil {
		revoked, err := checker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.L.Warn("check token blacklist failed", zap.Error(err))
			return response.CodeUnavailable, "暂时无法校验登录状态"
		}
		if revoked {
			return response.CodeUnauthorized, "token 已失效"
		}
	}
	c.Set(ctxkeys.CtxUserID, claims.UserID)
	c.Set(ctxkeys.CtxEmail, claims.Email)
	c.Set(ctxkeys.CtxRole, claims.Role)
	c.Set(ctxkeys.CtxJTI, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(CtxExpiresAt, claims.ExpiresAt.Time)
	}
	return response.CodeOK, ""
}

func Auth(secret []byte, checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if code, msg := authenticate(c, secret, checker); code != response.CodeOK {
			response.Abort(c, code, msg)
			return
		}
		c.Next()
	}
}

// OptionalAuth 游客可以下单, 带了 token 时解析出用户
func OptionalAuth(secret []byte, checker RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := bearer(c); !ok {
			c.Next()
			return
		}
		if code, msg := authenticate(c, secret, checker); code != response.CodeOK {
			response.Abort(c, code, msg)
			return
		}
		c.Next()
	}
}

// RequireRole 需放在 Auth 之后
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ctxkeys.GetRole(c) != role {
			response.Abort(c, response.CodeForbidden, "无权限")
			return
		}
		c.Next()
	}
}

func ExpiresAt(c *gin.Context) time.Time {
	v, ok := c.Get(CtxExpiresAt)
	if !ok {
		return time.Now()
	}
	t, _ := v.(time.Time)
	return t
}
