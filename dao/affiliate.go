package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Affiliate struct {
	Repo[models.Affiliate]
}

func NewAffiliate(db *gorm.DB) *Affiliate {
	return &Affiliate{
		Repo: NewRepo[models.Affiliate](db),
	}
}

// WithTx 返回绑定到事务的 DAO
func (a *Affiliate) WithTx(tx *gorm.DB) *Affiliate {
	return &Affiliate{Repo: NewRepo[models.Affiliate](tx)}
}

func (a *Affiliate) List(ctx context.Context, activeOnly bool, email, keyword string) ([]*models.Affiliate, error) {
	items := make([]*models.Affiliate, 0)
	query := a.Db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if email != "" {
		query = query.Where("email = ?", email)
	}
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("code LIKE ? OR name LIKE ? OR email LIKE ?", like, like, like)
	}
	err := query.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (a *Affiliate) FindByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	return a.FindByWhere(ctx, "code = ?", code)
}

// FindForUpdate 事务内加行锁读取
func (a *Affiliate) FindForUpdate(ctx context.Context, id int64) (*models.Affiliate, error) {
	var item models.Affiliate
	err := a.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveTotals 写回累计值. 调用方在事务内持有行锁并完成增量计算
func (a *Affiliate) SaveTotals(ctx context.Context, aff *models.Affiliate) error {
	return a.Model(ctx).Where("id = ?", aff.ID).Updates(map[string]any{
		"total_points":     aff.TotalPoints,
		"total_commission": aff.TotalCommission,
		"total_orders":     aff.TotalOrders,
		"total_revenue":    aff.TotalRevenue,
		"updated_at":       time.Now(),
	}).Error
}
