package handler

import (
	"errors"

	"Storefront/config"
	"Storefront/middleware"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Auth struct {
	Jwt              *config.Jwt
	AuthService      service.IAuthService
	AffiliateService service.IAffiliateService
}

func (u *Auth) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(u.Jwt.Secret), u.AuthService)
	auth := r.Group("/v1/auth")
	auth.POST("/register", context.Wrap(u.Register))
	auth.POST("/login", context.Wrap(u.Login))
	auth.GET("/me", authorize, context.Wrap(u.Me))
	auth.POST("/logout", authorize, context.Wrap(u.Logout))
}

func (u *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	user, err := u.AuthService.Register(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, user)
	return nil
}

func (u *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := u.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// Me 邮箱匹配到推广者时一并返回推广者资料
func (u *Auth) Me(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.Wrap(response.CodeUnauthorized, err)
	}
	user, err := u.AuthService.Me(c.Request.Context(), uid)
	if err != nil {
		return bizError(err)
	}
	resp := types.MeResponse{User: user}
	acct, err := u.AffiliateService.MyAccount(c.Request.Context(), user.Email)
	switch {
	case err == nil:
		resp.Affiliate = acct.Affiliate
	case !errors.Is(err, service.ErrNotAffiliate):
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (u *Auth) Logout(c *gin.Context) error {
	jti := c.GetString(context.CtxJTI)
	if err := u.AuthService.Logout(c.Request.Context(), jti, middleware.ExpiresAt(c)); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}
