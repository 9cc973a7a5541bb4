package handler

import (
	"strconv"

	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Cart struct {
	CartService service.ICartService
}

func (h *Cart) RegisterRouter(r gin.IRouter) {
	cart := r.Group("/v1/cart")
	cart.GET("", context.Wrap(h.View))
	cart.DELETE("", context.Wrap(h.Clear))
	cart.POST("/items", context.Wrap(h.AddItem))
	cart.PUT("/items/:product_id", context.Wrap(h.UpdateItem))
	cart.DELETE("/items/:product_id", context.Wrap(h.RemoveItem))
	cart.POST("/code", context.Wrap(h.ApplyCode))
	cart.DELETE("/code", context.Wrap(h.RemoveCode))
}

func productIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(response.CodeInvalidParam, "invalid product_id")
	}
	return id, nil
}

func (h *Cart) View(c *gin.Context) error {
	view, err := h.CartService.View(c.Request.Context(), cartSession(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) Clear(c *gin.Context) error {
	if err := h.CartService.Clear(c.Request.Context(), cartSession(c)); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (h *Cart) AddItem(c *gin.Context) error {
	var req types.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	view, err := h.CartService.AddItem(c.Request.Context(), cartSession(c), req.ProductID, req.Quantity)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) UpdateItem(c *gin.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return err
	}
	var req types.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	view, err := h.CartService.UpdateItem(c.Request.Context(), cartSession(c), id, req.Quantity)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) RemoveItem(c *gin.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return err
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), cartSession(c), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

// ApplyCode 无效码返回 200 + 业务码, 由前端行内提示
func (h *Cart) ApplyCode(c *gin.Context) error {
	var req types.ApplyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	view, err := h.CartService.ApplyCode(c.Request.Context(), cartSession(c), req.Code)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Cart) RemoveCode(c *gin.Context) error {
	view, err := h.CartService.RemoveCode(c.Request.Context(), cartSession(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, view)
	return nil
}
