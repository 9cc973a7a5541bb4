package config

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountCode 静态折扣码 (非推广码)
type DiscountCode struct {
	Code   string          `json:"code" yaml:"code"`
	Kind   string          `json:"kind" yaml:"kind"` // percent | fixed
	Value  decimal.Decimal `json:"value" yaml:"value"`
	Active bool            `json:"active" yaml:"active"`
}

type Shop struct {
	Currency       string          `yaml:"currency" env:"CURRENCY"`
	ShippingFee    decimal.Decimal `yaml:"shipping_fee"`
	CommissionRate decimal.Decimal `yaml:"commission_rate"`
	PointsRate     decimal.Decimal `yaml:"points_rate"`
	CartTTL        time.Duration   `yaml:"cart_ttl" env:"CART_TTL"`
	DiscountCodes  []DiscountCode  `yaml:"discount_codes"`

	// 返佣补偿: 每隔 ReconcileInterval 扫描一次下单超过 ReconcileAfter 仍未结算的订单
	ReconcileInterval time.Duration `yaml:"reconcile_interval" env:"RECONCILE_INTERVAL"`
	ReconcileAfter    time.Duration `yaml:"reconcile_after" env:"RECONCILE_AFTER"`
	ReconcileBatch    int           `yaml:"reconcile_batch"`
}

var (
	defaultShippingFee    = decimal.NewFromInt(15)
	defaultCommissionRate = decimal.RequireFromString("0.10")
	defaultPointsRate     = decimal.RequireFromString("0.015")
)

func (s *Shop) fill() {
	if s.Currency == "" {
		s.Currency = "USD"
	}
	if s.ShippingFee.IsZero() {
		s.ShippingFee = defaultShippingFee
	}
	if s.CommissionRate.IsZero() {
		s.CommissionRate = defaultCommissionRate
	}
	if s.PointsRate.IsZero() {
		s.PointsRate = defaultPointsRate
	}
	if s.CartTTL <= 0 {
		s.CartTTL = 72 * time.Hour
	}
	if s.ReconcileInterval <= 0 {
		s.ReconcileInterval = time.Minute
	}
	if s.ReconcileAfter <= 0 {
		s.ReconcileAfter = 5 * time.Minute
	}
	if s.ReconcileBatch <= 0 {
		s.ReconcileBatch = 100
	}
}

func ProvideShopConfig(cfg *Config) *Shop {
	return cfg.Shop
}
