package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionPending   = "pending"
	TransactionPaid      = "paid"
	TransactionCancelled = "cancelled"
)

const (
	TransactionKindOrder      = "order"
	TransactionKindAdjustment = "adjustment"
)

// Transaction 推广流水: 一笔订单返佣或一次人工积分调整. 金额在创建时固定
type Transaction struct {
	ID               int64           `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	AffiliateID      int64           `gorm:"column:affiliate_id;not null;index:idx_affiliate_transactions_affiliate" json:"affiliate_id"`
	AffiliateCode    string          `gorm:"column:affiliate_code;type:varchar(32);not null" json:"affiliate_code"`
	AffiliateName    string          `gorm:"column:affiliate_name;type:varchar(128);not null" json:"affiliate_name"`
	AffiliateEmail   string          `gorm:"column:affiliate_email;type:varchar(255);not null" json:"affiliate_email"`
	OrderNumber      string          `gorm:"column:order_number;type:varchar(64);not null;uniqueIndex:uk_affiliate_transactions_order" json:"order_number"`
	OrderTotal       decimal.Decimal `gorm:"column:order_total;type:decimal(12,2);not null;default:0" json:"order_total"`
	CommissionAmount decimal.Decimal `gorm:"column:commission_amount;type:decimal(12,2);not null;default:0" json:"commission_amount"`
	PointsEarned     decimal.Decimal `gorm:"column:points_earned;type:decimal(12,2);not null;default:0" json:"points_earned"`
	CustomerEmail    string          `gorm:"column:customer_email;type:varchar(255)" json:"customer_email"`
	Kind             string          `gorm:"column:kind;type:varchar(16);not null;default:'order'" json:"kind"`
	Reason           string          `gorm:"column:reason;type:varchar(255)" json:"reason"`
	Status           string          `gorm:"column:status;type:varchar(16);not null;index:idx_affiliate_transactions_status" json:"status"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime;index:idx_affiliate_transactions_created" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "affiliate_transactions"
}

// OrderCount 订单类流水计 1 单, 调整流水不计
func (t *Transaction) OrderCount() int64 {
	if t.Kind == TransactionKindAdjustment {
		return 0
	}
	return 1
}

// CanTransition 只允许 pending -> paid / cancelled
func CanTransition(from, to string) bool {
	if from != TransactionPending {
		return false
	}
	return to == TransactionPaid || to == TransactionCancelled
}
