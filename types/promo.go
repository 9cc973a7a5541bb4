package types

import "github.com/shopspring/decimal"

type PromoKind string

const (
	PromoPercent PromoKind = "percent"
	PromoFixed   PromoKind = "fixed"
)

// Promo 校验通过的优惠码, 来源是静态折扣表或推广者
type Promo struct {
	Code          string          `json:"code"`
	Kind          PromoKind       `json:"kind"`
	Percent       decimal.Decimal `json:"percent"`
	Amount        decimal.Decimal `json:"amount"`
	IsAffiliate   bool            `json:"is_affiliate"`
	AffiliateID   int64           `json:"affiliate_id,omitempty"`
	AffiliateName string          `json:"affiliate_name,omitempty"`
}

type ValidatePromoRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type ValidatePromoResponse struct {
	Valid    bool            `json:"valid"`
	Promo    *Promo          `json:"promo,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}

type ClaimPromotionRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Promotion string `json:"promotion" binding:"required"`
}

type ClaimPromotionResponse struct {
	AlreadySubmitted bool `json:"already_submitted"`
}
