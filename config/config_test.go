package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
app:
  name: storefront
  debug: true
server:
  http: 9090
mysql:
  host: 127.0.0.1
  port: 3306
  username: shop
  password: secret
  database: storefront
shop:
  shipping_fee: 12.50
  discount_codes:
    - code: WELCOME10
      kind: percent
      value: 10
      active: true
`

func TestParseDefaults(t *testing.T) {
	conf, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 9090, conf.Server.Http)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.True(t, conf.Debug())
	assert.True(t, conf.Shop.ShippingFee.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, conf.Shop.CommissionRate.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, conf.Shop.PointsRate.Equal(decimal.RequireFromString("0.015")))
	assert.Equal(t, 72*time.Hour, conf.Shop.CartTTL)
	assert.Equal(t, LedgerModeAuto, conf.Ledger.Mode)
	require.Len(t, conf.Shop.DiscountCodes, 1)
	assert.True(t, conf.Shop.DiscountCodes[0].Value.Equal(decimal.NewFromInt(10)))
	assert.False(t, conf.RocketMQ.Enabled())
	assert.False(t, conf.Oss.Enabled())
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_SERVER_HTTP", "7001")
	t.Setenv("STOREFRONT_LEDGER_MODE", "local")
	t.Setenv("STOREFRONT_MYSQL_PASSWORD", "from-env")

	conf, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 7001, conf.Server.Http)
	assert.Equal(t, LedgerModeLocal, conf.Ledger.Mode)
	assert.Equal(t, "from-env", conf.MySQL.Password)
	assert.Contains(t, conf.MySQL.Dsn(), "shop:from-env@tcp(127.0.0.1:3306)/storefront")
}

func TestNewDevConfig(t *testing.T) {
	conf := New("../configs/config.dev.yaml")

	assert.Equal(t, "dev", conf.App.Env)
	assert.Equal(t, 8080, conf.Server.Http)
	assert.Equal(t, LedgerModeAuto, conf.Ledger.Mode)
	assert.Equal(t, 72*time.Hour, conf.Shop.CartTTL)
	require.Len(t, conf.Shop.DiscountCodes, 2)
	assert.Equal(t, "FIVEOFF", conf.Shop.DiscountCodes[1].Code)
	assert.True(t, conf.Shop.ShippingFee.Equal(decimal.RequireFromString("15")))
	assert.False(t, conf.RocketMQ.Enabled())
	assert.False(t, conf.Oss.Enabled())
}
