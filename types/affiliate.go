package types

import (
	"Storefront/models"

	"github.com/shopspring/decimal"
)

type CreateAffiliateRequest struct {
	Code            string          `json:"code" binding:"required"`
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        *bool           `json:"is_active"` // 不传默认启用
	Notes           string          `json:"notes"`
}

type UpdateAffiliateRequest struct {
	Code            *string          `json:"code"`
	Name            *string          `json:"name"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IsActive        *bool            `json:"is_active"`
	Notes           *string          `json:"notes"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AdjustPointsRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Reason string          `json:"reason" binding:"required"`
}

type AffiliateListRequest struct {
	ActiveOnly bool   `form:"active_only"`
	Keyword    string `form:"keyword"`
}

type TransactionListRequest struct {
	AffiliateID int64  `form:"affiliate_id"`
	Status      string `form:"status" binding:"omitempty,oneof=pending paid cancelled"`
	Cursor      int64  `form:"cursor"`
	Limit       int    `form:"limit"`
}

type TransactionListResponse struct {
	Items      []*models.Transaction `json:"items"`
	HasMore    bool                  `json:"has_more"`
	NextCursor int64                 `json:"next_cursor"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid cancelled"`
}

// Dashboard 管理后台汇总
type Dashboard struct {
	Affiliates          int             `json:"affiliates"`
	ActiveAffiliates    int             `json:"active_affiliates"`
	TotalPoints         decimal.Decimal `json:"total_points"`
	TotalCommission     decimal.Decimal `json:"total_commission"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalOrders         int64           `json:"total_orders"`
	PendingCommission   decimal.Decimal `json:"pending_commission"`
	PendingTransactions int             `json:"pending_transactions"`
	Ledger              string          `json:"ledger"`
}

type MyAccountResponse struct {
	Affiliate    *models.Affiliate     `json:"affiliate"`
	Transactions []*models.Transaction `json:"transactions"`
}
