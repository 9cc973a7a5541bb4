package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ICheckoutService interface {
	Checkout(ctx context.Context, session string, userID int64, req *types.CheckoutRequest) (*models.Order, error)
}

type CheckoutService struct {
	App        *config.App
	Shop       *config.Shop
	DB         *gorm.DB
	Carts      *cache.CartStorage
	ProductDAO *dao.Product
	OrderDAO   *dao.Order
	Promo      IPromoService
	Trigger    CompletionTrigger
}

var _ ICheckoutService = (*CheckoutService)(nil)

func (s *CheckoutService) Checkout(ctx context.Context, session string, userID int64, req *types.CheckoutRequest) (*models.Order, error) {
	data, err := s.Carts.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.ProductDAO.FindByIds(ctx, cartProductIDs(data.Items))
	if err != nil {
		return nil, err
	}
	byID := productMap(products)
	for _, item := range data.Items {
		p, ok := byID[item.ProductID]
		if !ok || p.Status != models.ProductOnShelf {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, item.ProductID)
		}
		if p.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
	}
	lines, subtotal := priceLines(data.Items, byID)

	// 下单时重新校验优惠码, 推广者可能已被停用
	var (
		promo    types.Promo
		discount = decimal.Zero
	)
	if data.Code != "" {
		var ok bool
		promo, discount, ok, err = s.Promo.Quote(ctx, data.Code, subtotal)
		if err != nil {
			return nil, err
		}
		if !ok {
			_ = s.Carts.RemoveCode(ctx, session)
			return nil, ErrPromoNotFound
		}
	}
	shipping := s.Shop.ShippingFee
	total := subtotal.Sub(discount).Add(shipping)

	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	orderID := snowflake.GenID()
	order := &models.Order{
		ID:              orderID,
		OrderNumber:     utils.GenOrderNumber(s.App.HashSalt, orderID),
		UserID:          userID,
		CustomerEmail:   utils.NormalizeEmail(req.CustomerEmail),
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		ShippingAmount:  shipping,
		TotalAmount:     total,
		PromoCode:       promo.Code,
		Status:          models.OrderPending,
		ShippingAddress: datatypes.JSON(address),
		Items:           make([]models.OrderItem, 0, len(lines)),
	}
	if promo.IsAffiliate {
		// pending 和订单同一事务落库, 结算没完成就由 Reconcile 补偿
		order.AffiliateCode = promo.Code
		order.AccrualStatus = models.AccrualPending
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:          snowflake.GenID(),
			OrderID:     orderID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			LineTotal:   line.LineTotal,
		})
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productDAO := s.ProductDAO.WithTx(tx)
		for _, item := range data.Items {
			rows, err := productDAO.DecrStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return fmt.Errorf("%w: product %d", ErrOutOfStock, item.ProductID)
			}
		}
		return s.OrderDAO.WithTx(tx).CreateWithItems(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if err := s.Carts.Clear(ctx, session); err != nil {
		log.L.Warn("clear cart after checkout failed", zap.String("session", session), zap.Error(err))
	}
	log.L.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.String("promo_code", order.PromoCode),
	)

	if order.AffiliateCode != "" {
		ev := types.OrderCompleted{
			OrderNumber:   order.OrderNumber,
			AffiliateCode: order.AffiliateCode,
			OrderTotal:    order.Subtotal,
			CustomerEmail: order.CustomerEmail,
			CompletedAt:   time.Now(),
		}
		// 订单上保留 pending, 结算失败不影响下单
		if err := s.Trigger.Fire(ctx, ev); err != nil {
			log.L.Warn("fire order completed failed, left for reconcile",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err),
			)
		}
	}
	return order, nil
}
