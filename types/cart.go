package types

import (
	"Storefront/models"

	"github.com/shopspring/decimal"
)

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"` // 0 表示移除
}

type ApplyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type CartLine struct {
	ProductID   int64              `json:"product_id"`
	Sku         string             `json:"sku"`
	Name        string             `json:"name"`
	ContentKind models.ContentKind `json:"content_kind"`
	UnitPrice   decimal.Decimal    `json:"unit_price"`
	Quantity    int                `json:"quantity"`
	LineTotal   decimal.Decimal    `json:"line_total"`
	Available   bool               `json:"available"` // 下架或库存不足时为 false
}

type CartView struct {
	Session  string          `json:"session"`
	Lines    []CartLine      `json:"lines"`
	Code     string          `json:"code,omitempty"`
	Promo    *Promo          `json:"promo,omitempty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}
