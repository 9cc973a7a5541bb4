package service

import (
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/types"

	"github.com/shopspring/decimal"
)

// priceLines 按当前商品价格计算购物车行, 不可售的行不计入小计
func priceLines(items []cache.CartItem, products map[int64]*models.Product) ([]types.CartLine, decimal.Decimal) {
	lines := make([]types.CartLine, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		line := types.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		p, ok := products[item.ProductID]
		if ok {
			line.Sku = p.Sku
			line.Name = p.Name
			line.ContentKind = p.ContentKind
			line.UnitPrice = p.Price
			line.LineTotal = money.Round2(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			line.Available = p.Status == models.ProductOnShelf && p.Stock >= item.Quantity
		}
		if line.Available {
			subtotal = subtotal.Add(line.LineTotal)
		}
		lines = append(lines, line)
	}
	return lines, money.Round2(subtotal)
}

func productMap(products []*models.Product) map[int64]*models.Product {
	m := make(map[int64]*models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func cartProductIDs(items []cache.CartItem) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
