package service

import (
	"Storefront/config"
	"Storefront/ledger"
	"Storefront/pkg/log"
	"Storefront/pkg/money"
	"Storefront/pkg/nacos"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type IPromoService interface {
	Validate(ctx context.Context, raw string) (types.Promo, bool, error)
	ComputeDiscount(promo types.Promo, subtotal decimal.Decimal) decimal.Decimal
	Quote(ctx context.Context, raw string, subtotal decimal.Decimal) (types.Promo, decimal.Decimal, bool, error)
	IsStaticCode(code string) bool
	SetDiscountCodes(codes []config.DiscountCode)
}

// PromoService 优惠码解析. 先查静态折扣表, 再查推广者, 推广者的启用状态每次实时读取
type PromoService struct {
	Ledger ledger.Ledger

	mu    sync.RWMutex
	codes map[string]config.DiscountCode
}

var _ IPromoService = (*PromoService)(nil)

func NewPromoService(shop *config.Shop, l ledger.Ledger) *PromoService {
	p := &PromoService{Ledger: l}
	p.SetDiscountCodes(shop.DiscountCodes)
	return p
}

// SetDiscountCodes 整表替换静态折扣码
func (p *PromoService) SetDiscountCodes(codes []config.DiscountCode) {
	table := make(map[string]config.DiscountCode, len(codes))
	for _, dc := range codes {
		dc.Code = utils.NormalizeCode(dc.Code)
		if dc.Code == "" {
			continue
		}
		table[dc.Code] = dc
	}
	p.mu.Lock()
	p.codes = table
	p.mu.Unlock()
}

func (p *PromoService) lookupStatic(code string) (config.DiscountCode, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	dc, ok := p.codes[code]
	return dc, ok
}

// IsStaticCode 静态表中是否存在该码, 不论是否启用
func (p *PromoService) IsStaticCode(code string) bool {
	_, ok := p.lookupStatic(utils.NormalizeCode(code))
	return ok
}

func (p *PromoService) Validate(ctx context.Context, raw string) (types.Promo, bool, error) {
	code := utils.NormalizeCode(raw)
	if code == "" {
		return types.Promo{}, false, nil
	}

	if dc, ok := p.lookupStatic(code); ok && dc.Active {
		promo := types.Promo{Code: dc.Code, Kind: types.PromoKind(dc.Kind)}
		if promo.Kind == types.PromoFixed {
			promo.Amount = dc.Value
		} else {
			promo.Kind = types.PromoPercent
			promo.Percent = dc.Value
		}
		return promo, true, nil
	}

	aff, err := p.Ledger.FindAffiliateByCode(ctx, code)
	if errors.Is(err, ledger.ErrNotFound) {
		return types.Promo{}, false, nil
	}
	if err != nil {
		return types.Promo{}, false, err
	}
	if !aff.IsActive {
		return types.Promo{}, false, nil
	}
	return types.Promo{
		Code:          aff.Code,
		Kind:          types.PromoPercent,
		Percent:       aff.DiscountPercent,
		IsAffiliate:   true,
		AffiliateID:   aff.ID,
		AffiliateName: aff.Name,
	}, true, nil
}

// ComputeDiscount 结果始终落在 [0, subtotal]
func (p *PromoService) ComputeDiscount(promo types.Promo, subtotal decimal.Decimal) decimal.Decimal {
	upper := money.NonNegative(subtotal)
	var discount decimal.Decimal
	switch promo.Kind {
	case types.PromoFixed:
		discount = money.Round2(promo.Amount)
	default:
		discount = money.Percent(upper, promo.Percent)
	}
	return money.Clamp(discount, decimal.Zero, upper)
}

func (p *PromoService) Quote(ctx context.Context, raw string, subtotal decimal.Decimal) (types.Promo, decimal.Decimal, bool, error) {
	promo, ok, err := p.Validate(ctx, raw)
	if err != nil || !ok {
		return types.Promo{}, decimal.Zero, ok, err
	}
	return promo, p.ComputeDiscount(promo, subtotal), true, nil
}

type discountTable struct {
	DiscountCodes []config.DiscountCode `yaml:"discount_codes"`
}

// ParseDiscountCodes 解析 nacos 中的折扣码配置
func ParseDiscountCodes(content string) ([]config.DiscountCode, error) {
	var table discountTable
	if err := yaml.Unmarshal([]byte(content), &table); err != nil {
		return nil, err
	}
	return table.DiscountCodes, nil
}

// ProvidePromoService 配置了 nacos 时以 nacos 为准并热更新, 连接失败退回 yaml 中的折扣码
func ProvidePromoService(shop *config.Shop, nacosConf *config.NacosConfig, l ledger.Ledger) *PromoService {
	p := NewPromoService(shop, l)
	if !nacosConf.Enabled() {
		return p
	}
	cli, err := nacos.NewConfigClient(nacosConf)
	if err != nil {
		return p
	}
	reload := func(content string) {
		codes, err := ParseDiscountCodes(content)
		if err != nil {
			log.L.Warn("invalid discount codes from nacos, keep current table", zap.Error(err))
			return
		}
		p.SetDiscountCodes(codes)
		log.L.Info("discount codes reloaded", zap.Int("count", len(codes)))
	}
	content, err := nacos.Watch(cli, nacosConf, reload)
	if err != nil {
		log.L.Warn("watch discount codes failed", zap.Error(err))
	}
	if content != "" {
		reload(content)
	}
	return p
}
