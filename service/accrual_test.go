package service

import (
	"context"
	"testing"
	"time"

	"Storefront/models"
	"Storefront/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)

	res, err := f.accrual.Accrue(ctx, types.OrderCompleted{
		OrderNumber:   "ORD-1001",
		AffiliateCode: "jane15",
		OrderTotal:    dec("230.00"),
		CustomerEmail: "Buyer@Example.com",
	})
	require.NoError(t, err)
	require.Equal(t, types.AccrualRecorded, res.Status)

	tx := res.Transaction
	assert.Equal(t, jane.ID, tx.AffiliateID)
	assert.Equal(t, "JANE15", tx.AffiliateCode)
	assert.Equal(t, "23.00", tx.CommissionAmount.StringFixed(2))
	assert.Equal(t, "3.45", tx.PointsEarned.StringFixed(2))
	assert.Equal(t, "buyer@example.com", tx.CustomerEmail)
	assert.Equal(t, models.TransactionPending, tx.Status)

	aff, err := f.affiliates.Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "23.00", aff.TotalCommission.StringFixed(2))
	assert.Equal(t, "3.45", aff.TotalPoints.StringFixed(2))
	assert.Equal(t, "230.00", aff.TotalRevenue.StringFixed(2))
	assert.Equal(t, int64(1), aff.TotalOrders)

	select {
	case m := <-f.mail.sent:
		assert.Equal(t, "jane@example.com", m.To)
		assert.Contains(t, m.Body, "ORD-1001")
		assert.Contains(t, m.Body, "23.00")
	case <-time.After(2 * time.Second):
		t.Fatal("commission mail not sent")
	}
}

func TestAccrueIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	ev := types.OrderCompleted{OrderNumber: "ORD-1", AffiliateCode: "JANE15", OrderTotal: dec("230")}

	res, err := f.accrual.Accrue(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, types.AccrualRecorded, res.Status)

	res, err = f.accrual.Accrue(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, types.AccrualDuplicate, res.Status)

	// redis 标记丢失后由账本的订单号唯一性兜底
	f.mr.FlushAll()
	res, err = f.accrual.Accrue(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, types.AccrualDuplicate, res.Status)

	aff, err := f.affiliates.Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), aff.TotalOrders)
	assert.Equal(t, "23.00", aff.TotalCommission.StringFixed(2))
}

func TestAccrueSkipped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createJane(t)

	for name, ev := range map[string]types.OrderCompleted{
		"no code":         {OrderNumber: "ORD-1", OrderTotal: dec("10")},
		"no order number": {AffiliateCode: "JANE15", OrderTotal: dec("10")},
		"unknown code":    {OrderNumber: "ORD-2", AffiliateCode: "GHOST", OrderTotal: dec("10")},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := f.accrual.Accrue(ctx, ev)
			require.NoError(t, err)
			assert.Equal(t, types.AccrualSkipped, res.Status)
		})
	}
}

func TestAccrueInProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createJane(t)

	ok, err := f.accrual.Locks.Lock(ctx, "ORD-9")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-9", AffiliateCode: "JANE15", OrderTotal: dec("10")})
	assert.ErrorIs(t, err, ErrAccrualInProgress)

	require.NoError(t, f.accrual.Locks.Unlock(ctx, "ORD-9"))
	res, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-9", AffiliateCode: "JANE15", OrderTotal: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, types.AccrualRecorded, res.Status)
}

func TestAccrueInactiveAffiliate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	_, err := f.affiliates.SetActive(ctx, jane.ID, false)
	require.NoError(t, err)

	res, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-3", AffiliateCode: "JANE15", OrderTotal: dec("100")})
	require.NoError(t, err)
	assert.Equal(t, types.AccrualRecorded, res.Status)
	assert.Equal(t, "10.00", res.Transaction.CommissionAmount.StringFixed(2))
}

func TestAccrueNegativeTotal(t *testing.T) {
	f := newFixture(t)
	f.createJane(t)

	res, err := f.accrual.Accrue(context.Background(), types.OrderCompleted{OrderNumber: "ORD-4", AffiliateCode: "JANE15", OrderTotal: dec("-20")})
	require.NoError(t, err)
	require.Equal(t, types.AccrualRecorded, res.Status)
	assert.True(t, res.Transaction.CommissionAmount.IsZero())
	assert.True(t, res.Transaction.PointsEarned.IsZero())
}
