package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) WithTx(tx *gorm.DB) *Order {
	return &Order{Repo: NewRepo[models.Order](tx)}
}

// CreateWithItems 订单与明细一起写入, 调用方负责事务
func (o *Order) CreateWithItems(ctx context.Context, order *models.Order) error {
	return o.Db.WithContext(ctx).Create(order).Error
}

func (o *Order) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var item models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// OrderQuery 订单筛选, 零值不过滤
type OrderQuery struct {
	Email  string
	Status string
	Cursor int64
	Limit  int
}

func (o *Order) List(ctx context.Context, q OrderQuery) ([]*models.Order, error) {
	items := make([]*models.Order, 0, q.Limit)
	query := o.Db.WithContext(ctx).Preload("Items")
	if q.Email != "" {
		query = query.Where("customer_email = ?", q.Email)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Cursor > 0 {
		query = query.Where("id < ?", q.Cursor)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	err := query.Order("id DESC").Find(&items).Error
	return items, err
}

// UpdateStatus 带旧状态条件的更新, 防止并发覆盖
func (o *Order) UpdateStatus(ctx context.Context, id int64, from, to string) (int64, error) {
	res := o.Model(ctx).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// ListAccrualPending 待结算返佣的订单, 已取消的不再结算. before 为零值时不按时间过滤
func (o *Order) ListAccrualPending(ctx context.Context, before time.Time, limit int) ([]*models.Order, error) {
	items := make([]*models.Order, 0, limit)
	query := o.Db.WithContext(ctx).
		Where("accrual_status = ? AND status <> ?", models.AccrualPending, models.OrderCancelled)
	if !before.IsZero() {
		query = query.Where("created_at < ?", before)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("id ASC").Find(&items).Error
	return items, err
}

// SetAccrualStatus 条件更新结算状态, from 为空时不限制旧状态
func (o *Order) SetAccrualStatus(ctx context.Context, orderNumber, from, to string) (int64, error) {
	query := o.Model(ctx).Where("order_number = ?", orderNumber)
	if from != "" {
		query = query.Where("accrual_status = ?", from)
	}
	res := query.Updates(map[string]any{"accrual_status": to, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
