package cache

import (
	"context"
	"testing"
	"time"

	"Storefront/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStorage(t *testing.T) {
	ctx := context.Background()
	mr, rdb := testkit.NewRedis(t)
	cart := NewCartStorage(rdb, time.Hour)

	qty, err := cart.IncrItem(ctx, "s1", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), qty)
	qty, err = cart.IncrItem(ctx, "s1", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), qty)
	require.NoError(t, cart.SetItem(ctx, "s1", 1, 5))
	require.NoError(t, cart.SetCode(ctx, "s1", "JANE15"))

	data, err := cart.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "JANE15", data.Code)
	assert.Equal(t, []CartItem{{ProductID: 1, Quantity: 5}, {ProductID: 2, Quantity: 3}}, data.Items)
	assert.Equal(t, time.Hour, mr.TTL("cart:s1"))

	require.NoError(t, cart.RemoveItem(ctx, "s1", 1))
	require.NoError(t, cart.RemoveCode(ctx, "s1"))
	data, err = cart.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, data.Code)
	assert.Len(t, data.Items, 1)

	require.NoError(t, cart.Clear(ctx, "s1"))
	data, err = cart.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, data.Items)
	assert.False(t, mr.Exists("cart:s1"))
}

func TestCartStorageExpires(t *testing.T) {
	ctx := context.Background()
	mr, rdb := testkit.NewRedis(t)
	cart := NewCartStorage(rdb, time.Minute)

	require.NoError(t, cart.SetItem(ctx, "s2", 7, 1))
	mr.FastForward(2 * time.Minute)

	data, err := cart.Load(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, data.Items)
}

func TestPromoClaimStorage(t *testing.T) {
	ctx := context.Background()
	_, rdb := testkit.NewRedis(t)
	claims := NewPromoClaimStorage(rdb)

	first, err := claims.Claim(ctx, "a@example.com", "welcome")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := claims.Claim(ctx, "a@example.com", "welcome")
	require.NoError(t, err)
	assert.False(t, again)

	other, err := claims.Claim(ctx, "a@example.com", "spring")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestAccrualLockStorage(t *testing.T) {
	ctx := context.Background()
	mr, rdb := testkit.NewRedis(t)
	locks := NewAccrualLockStorage(rdb)

	ok, err := locks.Lock(ctx, "ORD-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = locks.Lock(ctx, "ORD-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, locks.MarkDone(ctx, "ORD-1"))
	require.NoError(t, locks.Unlock(ctx, "ORD-1"))
	done, err := locks.IsDone(ctx, "ORD-1")
	require.NoError(t, err)
	assert.True(t, done)

	// 锁过期后可以再次抢占
	_, err = locks.Lock(ctx, "ORD-2")
	require.NoError(t, err)
	mr.FastForward(3 * time.Minute)
	ok, err = locks.Lock(ctx, "ORD-2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	_, rdb := testkit.NewRedis(t)
	bl := NewTokenBlacklist(rdb)

	require.NoError(t, bl.Add(ctx, "jti-1", time.Now().Add(time.Hour)))
	require.NoError(t, bl.Add(ctx, "jti-old", time.Now().Add(-time.Hour)))

	blocked, err := bl.IsBlocked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = bl.IsBlocked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, blocked)
}
