package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPercent(t *testing.T) {
	assert.Equal(t, "34.5", Percent(d("230"), d("15")).String())
	assert.Equal(t, "0", Percent(d("230"), d("0")).String())
	assert.Equal(t, "0.33", Percent(d("3.33"), d("10")).String())
}

func TestRate(t *testing.T) {
	assert.True(t, Rate(d("230"), d("0.10")).Equal(d("23.00")))
	assert.True(t, Rate(d("230"), d("0.015")).Equal(d("3.45")))
	assert.True(t, Rate(d("19.99"), d("0.015")).Equal(d("0.30")))
}

func TestClamp(t *testing.T) {
	assert.True(t, Clamp(d("-1"), decimal.Zero, d("10")).IsZero())
	assert.True(t, Clamp(d("11"), decimal.Zero, d("10")).Equal(d("10")))
	assert.True(t, Clamp(d("5.5"), decimal.Zero, d("10")).Equal(d("5.5")))
	assert.True(t, NonNegative(d("-1.55")).IsZero())
}
