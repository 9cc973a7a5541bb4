package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Affiliate 推广合作方. 累计值只通过流水增量调整
type Affiliate struct {
	ID              int64           `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Code            string          `gorm:"column:code;type:varchar(32);not null;uniqueIndex:uk_affiliates_code" json:"code"`
	Name            string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Email           string          `gorm:"column:email;type:varchar(255);not null;index:idx_affiliates_email" json:"email"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:decimal(5,2);not null;default:0" json:"discount_percent"`
	IsActive        bool            `gorm:"column:is_active;not null" json:"is_active"`
	TotalPoints     decimal.Decimal `gorm:"column:total_points;type:decimal(12,2);not null;default:0" json:"total_points"`
	TotalCommission decimal.Decimal `gorm:"column:total_commission;type:decimal(12,2);not null;default:0" json:"total_commission"`
	TotalOrders     int64           `gorm:"column:total_orders;not null;default:0" json:"total_orders"`
	TotalRevenue    decimal.Decimal `gorm:"column:total_revenue;type:decimal(12,2);not null;default:0" json:"total_revenue"`
	Notes           string          `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

// AffiliatePatch 管理员可修改的字段, nil 表示不修改
type AffiliatePatch struct {
	Code            *string
	Name            *string
	Email           *string
	DiscountPercent *decimal.Decimal
	IsActive        *bool
	Notes           *string
}

// Apply 把补丁写到副本上, 累计字段不受影响
func (p AffiliatePatch) Apply(a *Affiliate) {
	if p.Code != nil {
		a.Code = *p.Code
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.DiscountPercent != nil {
		a.DiscountPercent = *p.DiscountPercent
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}

// Columns 需要更新的列
func (p AffiliatePatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Code != nil {
		cols["code"] = *p.Code
	}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.DiscountPercent != nil {
		cols["discount_percent"] = *p.DiscountPercent
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

func (p AffiliatePatch) Empty() bool {
	return len(p.Columns()) == 0
}
