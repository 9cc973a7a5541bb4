package types

import "github.com/shopspring/decimal"

type ReportRequest struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // 不含当天
}

// ReportRow 每个推广者一行
type ReportRow struct {
	AffiliateID   int64           `json:"affiliate_id"`
	AffiliateName string          `json:"affiliate_name"`
	Email         string          `json:"email"`
	Code          string          `json:"code"`
	Orders        int64           `json:"orders"`
	Revenue       decimal.Decimal `json:"revenue"`
	Commission    decimal.Decimal `json:"commission"`
	Points        decimal.Decimal `json:"points"`
}
