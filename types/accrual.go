package types

import (
	"Storefront/models"
	"time"

	"github.com/shopspring/decimal"
)

// OrderCompleted 订单完成事件, OrderTotal 为折扣和运费之前的商品小计
type OrderCompleted struct {
	OrderNumber   string          `json:"order_number"`
	AffiliateCode string          `json:"affiliate_code"`
	OrderTotal    decimal.Decimal `json:"order_total"`
	CustomerEmail string          `json:"customer_email"`
	CompletedAt   time.Time       `json:"completed_at"`
}

type AccrualStatus string

const (
	AccrualRecorded  AccrualStatus = "recorded"
	AccrualSkipped   AccrualStatus = "skipped"
	AccrualDuplicate AccrualStatus = "duplicate"
)

type AccrualResult struct {
	Status      AccrualStatus       `json:"status"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// ReconcileResult 一轮补偿结算的统计, Failed 为本轮仍未结算的订单号
type ReconcileResult struct {
	Scanned   int      `json:"scanned"`
	Recorded  int      `json:"recorded"`
	Duplicate int      `json:"duplicate"`
	Skipped   int      `json:"skipped"`
	Failed    []string `json:"failed"`
}
