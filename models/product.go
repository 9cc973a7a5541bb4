package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContentKind 商品详情页的内容模板, 作为商品元数据保存
type ContentKind string

const (
	ContentStandard  ContentKind = "standard"
	ContentBlendKLOW ContentKind = "blend_klow"
	ContentBacWater  ContentKind = "bac_water"
)

func (k ContentKind) Valid() bool {
	switch k {
	case ContentStandard, ContentBlendKLOW, ContentBacWater:
		return true
	}
	return false
}

const (
	ProductOffShelf = 0
	ProductOnShelf  = 1
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Sku         string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:uk_products_sku" json:"sku"`
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	CoverImage  string          `gorm:"column:cover_image;type:varchar(512)" json:"cover_image"`
	ContentKind ContentKind     `gorm:"column:content_kind;type:varchar(32);not null;default:'standard'" json:"content_kind"`
	Status      int8            `gorm:"column:status;not null;index:idx_products_status" json:"status"` // 0-下架, 1-上架
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
