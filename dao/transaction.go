package dao

import (
	"Storefront/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type Transaction struct {
	Repo[models.Transaction]
}

func NewTransaction(db *gorm.DB) *Transaction {
	return &Transaction{
		Repo: NewRepo[models.Transaction](db),
	}
}

func (t *Transaction) WithTx(tx *gorm.DB) *Transaction {
	return &Transaction{Repo: NewRepo[models.Transaction](tx)}
}

// TransactionQuery 流水筛选条件, 零值表示不过滤
type TransactionQuery struct {
	AffiliateID int64
	Status      string
	From        time.Time
	To          time.Time
	Cursor      int64
	Limit       int
}

// List 按 id 倒序, cursor 为上一页最后一条的 id
func (t *Transaction) List(ctx context.Context, q TransactionQuery) ([]*models.Transaction, error) {
	items := make([]*models.Transaction, 0)
	query := t.Db.WithContext(ctx)
	if q.AffiliateID > 0 {
		query = query.Where("affiliate_id = ?", q.AffiliateID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if !q.From.IsZero() {
		query = query.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		query = query.Where("created_at < ?", q.To)
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

func (t *Transaction) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Transaction, error) {
	return t.FindByWhere(ctx, "order_number = ?", orderNumber)
}

func (t *Transaction) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	return t.IsExist(ctx, "order_number = ?", orderNumber)
}

func (t *Transaction) UpdateStatus(ctx context.Context, id int64, from, to string) (int64, error) {
	res := t.Model(ctx).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
