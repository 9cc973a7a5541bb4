package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"Storefront/models"
	"Storefront/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffiliateCreate(t *testing.T) {
	f := newFixture(t)
	jane := f.createJane(t)

	assert.Equal(t, "JANE15", jane.Code)
	assert.Equal(t, "jane@example.com", jane.Email)
	assert.True(t, jane.IsActive)
	assert.True(t, jane.TotalPoints.IsZero())
	assert.Equal(t, int64(0), jane.TotalOrders)
}

func TestAffiliateCreateValidation(t *testing.T) {
	f := newFixture(t)
	f.createJane(t)
	ctx := context.Background()

	base := func() *types.CreateAffiliateRequest {
		return &types.CreateAffiliateRequest{Code: "BOB10", Name: "Bob", Email: "bob@example.com", DiscountPercent: dec("10")}
	}
	cases := []struct {
		name  string
		edit  func(r *types.CreateAffiliateRequest)
		field string
	}{
		{"short code", func(r *types.CreateAffiliateRequest) { r.Code = "ab" }, "code"},
		{"symbols in code", func(r *types.CreateAffiliateRequest) { r.Code = "BOB-10" }, "code"},
		{"long code", func(r *types.CreateAffiliateRequest) { r.Code = strings.Repeat("A", 33) }, "code"},
		{"blank name", func(r *types.CreateAffiliateRequest) { r.Name = "  " }, "name"},
		{"blank email", func(r *types.CreateAffiliateRequest) { r.Email = "" }, "email"},
		{"discount above 100", func(r *types.CreateAffiliateRequest) { r.DiscountPercent = dec("100.5") }, "discount_percent"},
		{"negative discount", func(r *types.CreateAffiliateRequest) { r.DiscountPercent = dec("-1") }, "discount_percent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.edit(req)
			_, err := f.affiliates.Create(ctx, req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// 与已有推广者或静态折扣码重复
	req := base()
	req.Code = "Jane15"
	_, err := f.affiliates.Create(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	req = base()
	req.Code = "welcome10"
	_, err = f.affiliates.Create(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateCode)

	list, err := f.affiliates.List(ctx, &types.AffiliateListRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAffiliateUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	bob, err := f.affiliates.Create(ctx, &types.CreateAffiliateRequest{Code: "BOB10", Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	name := "Jane D."
	pct := dec("20")
	updated, err := f.affiliates.Update(ctx, jane.ID, &types.UpdateAffiliateRequest{Name: &name, DiscountPercent: &pct})
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", updated.Name)
	assert.True(t, updated.DiscountPercent.Equal(dec("20")))

	code := "bob10"
	_, err = f.affiliates.Update(ctx, jane.ID, &types.UpdateAffiliateRequest{Code: &code})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	code = "JANE20"
	updated, err = f.affiliates.Update(ctx, jane.ID, &types.UpdateAffiliateRequest{Code: &code})
	require.NoError(t, err)
	assert.Equal(t, "JANE20", updated.Code)

	_, err = f.affiliates.Update(ctx, 12345, &types.UpdateAffiliateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrAffiliateNotFound)

	off, err := f.affiliates.SetActive(ctx, bob.ID, false)
	require.NoError(t, err)
	assert.False(t, off.IsActive)

	active, err := f.affiliates.List(ctx, &types.AffiliateListRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, jane.ID, active[0].ID)
}

func TestAffiliateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)

	require.NoError(t, f.affiliates.Delete(ctx, jane.ID))
	_, err := f.affiliates.Get(ctx, jane.ID)
	assert.ErrorIs(t, err, ErrAffiliateNotFound)
	assert.ErrorIs(t, f.affiliates.Delete(ctx, jane.ID), ErrAffiliateNotFound)

	_, ok, err := f.promo.Validate(ctx, "JANE15")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdjustPointsClampsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)

	_, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-1", AffiliateCode: "JANE15", OrderTotal: dec("230.00")})
	require.NoError(t, err)

	aff, tx, err := f.affiliates.AdjustPoints(ctx, jane.ID, dec("-5.00"), "manual correction")
	require.NoError(t, err)
	assert.Equal(t, "0.00", aff.TotalPoints.StringFixed(2))
	assert.Equal(t, "-3.45", tx.PointsEarned.StringFixed(2))
	assert.Equal(t, models.TransactionKindAdjustment, tx.Kind)
	assert.Equal(t, models.TransactionPaid, tx.Status)
	assert.True(t, strings.HasPrefix(tx.OrderNumber, "ADJ-"))
	assert.True(t, tx.OrderTotal.IsZero())
	assert.True(t, tx.CommissionAmount.IsZero())
	// 返佣与订单数不受调整影响
	assert.Equal(t, "23.00", aff.TotalCommission.StringFixed(2))
	assert.Equal(t, int64(1), aff.TotalOrders)

	aff, _, err = f.affiliates.AdjustPoints(ctx, jane.ID, dec("10"), "bonus")
	require.NoError(t, err)
	assert.Equal(t, "10.00", aff.TotalPoints.StringFixed(2))
}

func TestAdjustPointsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)

	var verr *ValidationError
	_, _, err := f.affiliates.AdjustPoints(ctx, jane.ID, dec("5"), " ")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reason", verr.Field)

	_, _, err = f.affiliates.AdjustPoints(ctx, jane.ID, dec("0.001"), "rounding")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "delta", verr.Field)

	_, _, err = f.affiliates.AdjustPoints(ctx, 999, dec("5"), "ghost")
	assert.ErrorIs(t, err, ErrAffiliateNotFound)
}

func TestTransactionStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createJane(t)

	res, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-2", AffiliateCode: "JANE15", OrderTotal: dec("100")})
	require.NoError(t, err)
	id := res.Transaction.ID

	_, err = f.affiliates.UpdateTransactionStatus(ctx, id, models.TransactionPending)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	paid, err := f.affiliates.UpdateTransactionStatus(ctx, id, models.TransactionPaid)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, paid.Status)

	_, err = f.affiliates.UpdateTransactionStatus(ctx, id, models.TransactionCancelled)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestListTransactionsPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	for _, n := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		_, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: n, AffiliateCode: "JANE15", OrderTotal: dec("10")})
		require.NoError(t, err)
	}

	page, err := f.affiliates.ListTransactions(ctx, &types.TransactionListRequest{AffiliateID: jane.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)

	next, err := f.affiliates.ListTransactions(ctx, &types.TransactionListRequest{AffiliateID: jane.ID, Limit: 2, Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Items, 1)
	assert.False(t, next.HasMore)
	assert.Equal(t, "ORD-A", next.Items[0].OrderNumber)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createJane(t)
	bob, err := f.affiliates.Create(ctx, &types.CreateAffiliateRequest{Code: "BOB10", Name: "Bob", Email: "bob@example.com", DiscountPercent: dec("10")})
	require.NoError(t, err)
	_, err = f.affiliates.SetActive(ctx, bob.ID, false)
	require.NoError(t, err)

	_, err = f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-1", AffiliateCode: "JANE15", OrderTotal: dec("230")})
	require.NoError(t, err)
	res, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-2", AffiliateCode: "BOB10", OrderTotal: dec("100")})
	require.NoError(t, err)
	_, err = f.affiliates.UpdateTransactionStatus(ctx, res.Transaction.ID, models.TransactionPaid)
	require.NoError(t, err)

	d, err := f.affiliates.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Affiliates)
	assert.Equal(t, 1, d.ActiveAffiliates)
	assert.Equal(t, int64(2), d.TotalOrders)
	assert.Equal(t, "33.00", d.TotalCommission.StringFixed(2))
	assert.Equal(t, "330.00", d.TotalRevenue.StringFixed(2))
	assert.Equal(t, "4.95", d.TotalPoints.StringFixed(2))
	assert.Equal(t, "23.00", d.PendingCommission.StringFixed(2))
	assert.Equal(t, 1, d.PendingTransactions)
	assert.Equal(t, "remote", d.Ledger)
}

func TestMyAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	_, err := f.accrual.Accrue(ctx, types.OrderCompleted{OrderNumber: "ORD-1", AffiliateCode: "JANE15", OrderTotal: dec("230")})
	require.NoError(t, err)

	acct, err := f.affiliates.MyAccount(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, acct.Affiliate.ID)
	assert.Len(t, acct.Transactions, 1)

	_, err = f.affiliates.MyAccount(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotAffiliate)
}

func TestAffiliateChangesArePublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	events := make(chan types.LedgerEvent, 8)
	unsubscribe := f.hub.Subscribe(ctx, func(ev types.LedgerEvent) { events <- ev })
	defer unsubscribe()

	jane := f.createJane(t)

	select {
	case ev := <-events:
		assert.Equal(t, types.EntityAffiliate, ev.Entity)
		assert.Equal(t, types.ActionCreated, ev.Action)
		assert.Equal(t, jane.ID, ev.EntityID)
		assert.NotEmpty(t, ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no ledger event")
	}
}
