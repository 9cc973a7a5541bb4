package handler

import (
	"strconv"

	"Storefront/config"
	"Storefront/middleware"
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Jwt            *config.Jwt
	AuthService    service.IAuthService
	ProductService service.IProductService
}

func (p *ProductHandler) RegisterRouter(r gin.IRouter) {
	products := r.Group("/v1/products")
	products.GET("", context.Wrap(p.List))
	products.GET("/:id", context.Wrap(p.Get))

	admin := r.Group("/v1/admin/products")
	admin.Use(middleware.Auth([]byte(p.Jwt.Secret), p.AuthService), middleware.RequireRole(models.RoleAdmin))
	admin.POST("", context.Wrap(p.CreateProduct)) // 上架商品
}

func (p *ProductHandler) List(c *gin.Context) error {
	var req types.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := p.ProductService.List(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (p *ProductHandler) Get(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(response.CodeInvalidParam, "invalid id")
	}
	product, err := p.ProductService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, product)
	return nil
}

func (p *ProductHandler) CreateProduct(c *gin.Context) error {
	var req types.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	product, err := p.ProductService.Create(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, product)
	return nil
}
