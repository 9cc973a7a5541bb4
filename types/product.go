package types

import (
	"Storefront/models"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Sku         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	Description string          `json:"description"`
	CoverImage  string          `json:"cover_image"`
	ContentKind string          `json:"content_kind"` // standard | blend_klow | bac_water
	Status      *int8           `json:"status"`       // 1-上架, 0-下架, 不传默认上架
}

type ProductListRequest struct {
	Cursor int64 `form:"cursor"`
	Limit  int   `form:"limit"`
}

// ProductListResponse 游标分页
type ProductListResponse struct {
	Products   []*models.Product `json:"products"`
	HasMore    bool              `json:"has_more"`
	NextCursor int64             `json:"next_cursor"`
}
