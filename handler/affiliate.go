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

type Affiliate struct {
	Jwt              *config.Jwt
	AuthService      service.IAuthService
	AffiliateService service.IAffiliateService
}

func (a *Affiliate) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(a.Jwt.Secret), a.AuthService)

	r.GET("/v1/affiliate/me", authorize, context.Wrap(a.MyAccount)) // 推广者自助查看

	admin := r.Group("/v1/admin")
	admin.Use(authorize, middleware.RequireRole(models.RoleAdmin))
	admin.GET("/dashboard", context.Wrap(a.Dashboard))
	admin.GET("/affiliates", context.Wrap(a.List))
	admin.POST("/affiliates", context.Wrap(a.Create))
	admin.GET("/affiliates/:id", context.Wrap(a.Get))
	admin.PUT("/affiliates/:id", context.Wrap(a.Update))
	admin.PUT("/affiliates/:id/active", context.Wrap(a.SetActive))
	admin.DELETE("/affiliates/:id", context.Wrap(a.Delete))
	admin.POST("/affiliates/:id/points", context.Wrap(a.AdjustPoints))
	admin.GET("/transactions", context.Wrap(a.ListTransactions))
	admin.PUT("/transactions/:id/status", context.Wrap(a.UpdateTransactionStatus))
}

func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(response.CodeInvalidParam, "invalid id")
	}
	return id, nil
}

func (a *Affiliate) MyAccount(c *gin.Context) error {
	resp, err := a.AffiliateService.MyAccount(c.Request.Context(), context.GetEmail(c))
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (a *Affiliate) Dashboard(c *gin.Context) error {
	resp, err := a.AffiliateService.Dashboard(c.Request.Context())
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (a *Affiliate) List(c *gin.Context) error {
	var req types.AffiliateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	items, err := a.AffiliateService.List(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, items)
	return nil
}

func (a *Affiliate) Get(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	aff, err := a.AffiliateService.Get(c.Request.Context(), id)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, aff)
	return nil
}

func (a *Affiliate) Create(c *gin.Context) error {
	var req types.CreateAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	aff, err := a.AffiliateService.Create(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, aff)
	return nil
}

func (a *Affiliate) Update(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req types.UpdateAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	aff, err := a.AffiliateService.Update(c.Request.Context(), id, &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, aff)
	return nil
}

func (a *Affiliate) SetActive(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req types.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	aff, err := a.AffiliateService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, aff)
	return nil
}

func (a *Affiliate) Delete(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := a.AffiliateService.Delete(c.Request.Context(), id); err != nil {
		return bizError(err)
	}
	response.Success(c, nil)
	return nil
}

func (a *Affiliate) AdjustPoints(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req types.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	aff, tx, err := a.AffiliateService.AdjustPoints(c.Request.Context(), id, req.Delta, req.Reason)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, gin.H{"affiliate": aff, "transaction": tx})
	return nil
}

func (a *Affiliate) ListTransactions(c *gin.Context) error {
	var req types.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.AffiliateService.ListTransactions(c.Request.Context(), &req)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}

func (a *Affiliate) UpdateTransactionStatus(c *gin.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req types.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	tx, err := a.AffiliateService.UpdateTransactionStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, tx)
	return nil
}
