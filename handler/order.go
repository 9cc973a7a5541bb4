package handler

import (
	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Jwt             *config.Jwt
	AuthService     service.IAuthService
	CheckoutService service.ICheckoutService
	OrderService    service.IOrderService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	secret := []byte(o.Jwt.Secret)
	authorize := middleware.Auth(secret, o.AuthService)

	r.POST("/v1/checkout", middleware.OptionalAuth(secret, o.AuthService), context.Wrap(o.Checkout))

	order := r.Group("/v1/orders")
	order.Use(authorize)
	order.GET("", context.Wrap(o.MyOrders))
	order.GET("/:number", context.Wrap(o.Get))

	admin := r.Group("/v1/admin/orders")
	admin.Use(authorize, middleware.RequireRole(models.RoleAdmin))
	admin.GET("", context.Wrap(o.List))
	admin.PUT("/:number/status", context.Wrap(o.UpdateStatus))
}

func (o *Order) Checkout(c *gin.Context) error {
	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	// 游客下单 userID 为 0
	userID, _ := context.GetUserID(c)
	order, err := o.CheckoutService.Checkout(c.Request.Context(), cartSession(c), userID, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, types.CheckoutResponse{Order: order})
	return nil
}

func (o *Order) MyOrders(c *gin.Context) error {
	var req types.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := o.OrderService.ListByEmail(c.Request.Context(), context.GetEmail(c), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

// Get 只能查看自己邮箱下的订单, 管理员不受限
func (o *Order) Get(c *gin.Context) error {
	order, err := o.OrderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		return bizError(err)
	}
	if context.GetRole(c) != models.RoleAdmin && order.CustomerEmail != context.GetEmail(c) {
		return bizError(service.ErrOrderNotFound)
	}
	response.Success(c, order)
	return nil
}

func (o *Order) List(c *gin.Context) error {
	var req types.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := o.OrderService.List(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) UpdateStatus(c *gin.Context) error {
	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	order, err := o.OrderService.UpdateStatus(c.Request.Context(), c.Param("number"), req.Status)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, order)
	return nil
}
