package dao

import (
	"Storefront/models"
	"context"

	"gorm.io/gorm"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

func (p *Product) WithTx(tx *gorm.DB) *Product {
	return &Product{Repo: NewRepo[models.Product](tx)}
}

// ListOnShelf 上架商品, 按 id 倒序游标分页
func (p *Product) ListOnShelf(ctx context.Context, cursor int64, limit int) ([]*models.Product, error) {
	items := make([]*models.Product, 0, limit)
	query := p.Db.WithContext(ctx).Where("status = ?", models.ProductOnShelf)
	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}
	err := query.Order("id DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (p *Product) ExistsBySku(ctx context.Context, sku string) (bool, error) {
	return p.IsExist(ctx, "sku = ?", sku)
}

// DecrStock 条件扣减库存, 返回 0 行表示库存不足
func (p *Product) DecrStock(ctx context.Context, id int64, qty int) (int64, error) {
	res := p.Model(ctx).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	return res.RowsAffected, res.Error
}
