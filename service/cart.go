package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ICartService interface {
	View(ctx context.Context, session string) (*types.CartView, error)
	AddItem(ctx context.Context, session string, productID int64, qty int) (*types.CartView, error)
	UpdateItem(ctx context.Context, session string, productID int64, qty int) (*types.CartView, error)
	RemoveItem(ctx context.Context, session string, productID int64) (*types.CartView, error)
	Clear(ctx context.Context, session string) error
	ApplyCode(ctx context.Context, session, raw string) (*types.CartView, error)
	RemoveCode(ctx context.Context, session string) (*types.CartView, error)
	ClaimPromotion(ctx context.Context, email, promotion string) (*types.ClaimPromotionResponse, error)
}

// CartService 购物车按会话保存在 redis, 价格和优惠每次读取时重新计算
type CartService struct {
	Shop       *config.Shop
	Carts      *cache.CartStorage
	Claims     *cache.PromoClaimStorage
	ProductDAO *dao.Product
	Promo      IPromoService
}

var _ ICartService = (*CartService)(nil)

func (s *CartService) loadProduct(ctx context.Context, productID int64) (*models.Product, error) {
	p, err := s.ProductDAO.FindById(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Status != models.ProductOnShelf {
		return nil, ErrProductUnavailable
	}
	return p, nil
}

func (s *CartService) View(ctx context.Context, session string) (*types.CartView, error) {
	data, err := s.Carts.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	products, err := s.ProductDAO.FindByIds(ctx, cartProductIDs(data.Items))
	if err != nil {
		return nil, err
	}
	lines, subtotal := priceLines(data.Items, productMap(products))

	view := &types.CartView{
		Session:  session,
		Lines:    lines,
		Subtotal: subtotal,
		Discount: decimal.Zero,
		Shipping: decimal.Zero,
		Currency: s.Shop.Currency,
	}
	if data.Code != "" {
		promo, discount, ok, err := s.Promo.Quote(ctx, data.Code, subtotal)
		if err != nil {
			return nil, err
		}
		if ok {
			view.Code = promo.Code
			view.Promo = &promo
			view.Discount = discount
		} else {
			// 推广者被停用或删除后优惠码失效
			if err := s.Carts.RemoveCode(ctx, session); err != nil {
				log.L.Warn("drop stale cart code failed", zap.String("session", session), zap.Error(err))
			}
		}
	}
	if subtotal.IsPositive() {
		view.Shipping = s.Shop.ShippingFee
	}
	view.Total = subtotal.Sub(view.Discount).Add(view.Shipping)
	return view, nil
}

func (s *CartService) AddItem(ctx context.Context, session string, productID int64, qty int) (*types.CartView, error) {
	if qty <= 0 {
		return nil, invalid("quantity", "must be positive")
	}
	p, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total, err := s.Carts.IncrItem(ctx, session, productID, qty)
	if err != nil {
		return nil, err
	}
	if total > int64(p.Stock) {
		if _, err := s.Carts.IncrItem(ctx, session, productID, -qty); err != nil {
			log.L.Warn("revert cart item failed", zap.String("session", session), zap.Error(err))
		}
		return nil, ErrOutOfStock
	}
	return s.View(ctx, session)
}

func (s *CartService) UpdateItem(ctx context.Context, session string, productID int64, qty int) (*types.CartView, error) {
	if qty < 0 {
		return nil, invalid("quantity", "must not be negative")
	}
	if qty == 0 {
		return s.RemoveItem(ctx, session, productID)
	}
	p, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if qty > p.Stock {
		return nil, ErrOutOfStock
	}
	if err := s.Carts.SetItem(ctx, session, productID, qty); err != nil {
		return nil, err
	}
	return s.View(ctx, session)
}

func (s *CartService) RemoveItem(ctx context.Context, session string, productID int64) (*types.CartView, error) {
	if err := s.Carts.RemoveItem(ctx, session, productID); err != nil {
		return nil, err
	}
	return s.View(ctx, session)
}

func (s *CartService) Clear(ctx context.Context, session string) error {
	return s.Carts.Clear(ctx, session)
}

// ApplyCode 每个购物车最多一个优惠码, 新码覆盖旧码
func (s *CartService) ApplyCode(ctx context.Context, session, raw string) (*types.CartView, error) {
	promo, ok, err := s.Promo.Validate(ctx, raw)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPromoNotFound
	}
	if err := s.Carts.SetCode(ctx, session, promo.Code); err != nil {
		return nil, err
	}
	return s.View(ctx, session)
}

func (s *CartService) RemoveCode(ctx context.Context, session string) (*types.CartView, error) {
	if err := s.Carts.RemoveCode(ctx, session); err != nil {
		return nil, err
	}
	return s.View(ctx, session)
}

// ClaimPromotion 一次性活动, 同一邮箱重复提交返回 already_submitted
func (s *CartService) ClaimPromotion(ctx context.Context, email, promotion string) (*types.ClaimPromotionResponse, error) {
	email = utils.NormalizeEmail(email)
	promotion = strings.ToLower(strings.TrimSpace(promotion))
	if email == "" {
		return nil, invalid("email", "required")
	}
	if promotion == "" {
		return nil, invalid("promotion", "required")
	}
	first, err := s.Claims.Claim(ctx, email, promotion)
	if err != nil {
		return nil, err
	}
	return &types.ClaimPromotionResponse{AlreadySubmitted: !first}, nil
}
