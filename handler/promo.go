package handler

import (
	"Storefront/pkg/context"
	"Storefront/pkg/response"
	"Storefront/service"
	"Storefront/types"

	"github.com/gin-gonic/gin"
)

type Promo struct {
	PromoService service.IPromoService
	CartService  service.ICartService
}

func (p *Promo) RegisterRouter(r gin.IRouter) {
	promo := r.Group("/v1/promo")
	promo.POST("/validate", context.Wrap(p.Validate))   // 校验优惠码并试算折扣
	promo.POST("/claim", context.Wrap(p.ClaimPromotion)) // 一次性活动登记
}

// Validate 码无效时 valid=false, 不算错误
func (p *Promo) Validate(c *gin.Context) error {
	var req types.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	promo, discount, ok, err := p.PromoService.Quote(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		return bizError(err)
	}
	resp := types.ValidatePromoResponse{Valid: ok, Discount: discount}
	if ok {
		resp.Promo = &promo
	}
	response.Success(c, resp)
	return nil
}

func (p *Promo) ClaimPromotion(c *gin.Context) error {
	var req types.ClaimPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := p.CartService.ClaimPromotion(c.Request.Context(), req.Email, req.Promotion)
	if err != nil {
		return bizError(err)
	}
	response.Success(c, resp)
	return nil
}
