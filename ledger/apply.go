package ledger

import (
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/pkg/snowflake"
	"strings"
	"time"
)

// applyDelta 把流水的增量加到推广者累计值上, 夹紧时 tx.PointsEarned 改写为实际生效的增量.
// 调用方传入副本, 落库成功后再回写
func applyDelta(aff *models.Affiliate, tx *models.Transaction, clampPoints bool) {
	points := money.Round2(aff.TotalPoints.Add(tx.PointsEarned))
	if clampPoints {
		clamped := money.NonNegative(points)
		tx.PointsEarned = clamped.Sub(aff.TotalPoints)
		points = clamped
	}
	aff.TotalPoints = points
	aff.TotalCommission = money.Round2(aff.TotalCommission.Add(tx.CommissionAmount))
	aff.TotalRevenue = money.Round2(aff.TotalRevenue.Add(tx.OrderTotal))
	aff.TotalOrders += tx.OrderCount()
	aff.UpdatedAt = time.Now()
}

// fillTransaction 补齐流水的冗余字段和默认值
func fillTransaction(aff *models.Affiliate, tx *models.Transaction) {
	if tx.ID == 0 {
		tx.ID = snowflake.GenID()
	}
	tx.AffiliateID = aff.ID
	tx.AffiliateCode = aff.Code
	tx.AffiliateName = aff.Name
	tx.AffiliateEmail = aff.Email
	if tx.Kind == "" {
		tx.Kind = models.TransactionKindOrder
	}
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
