// Package money 定价、折扣和返佣共用的金额计算, 结果统一保留两位小数
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 四舍五入到分
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent amount * pct / 100
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(pct).Div(hundred))
}

// Rate amount * rate
func Rate(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate))
}

// Clamp 限制在 [lo, hi] 之间
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// NonNegative 负数按 0 处理
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
