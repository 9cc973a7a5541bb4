package service

import (
	"context"
	"errors"
	"testing"

	"Storefront/ledger"
	"Storefront/models"
	"Storefront/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest() *types.CheckoutRequest {
	return &types.CheckoutRequest{
		CustomerEmail: "Buyer@Example.com",
		ShippingAddress: types.ShippingAddress{
			Name:       "Buyer",
			Line1:      "1 Main St",
			City:       "Austin",
			PostalCode: "73301",
			Country:    "US",
		},
	}
}

func TestCheckoutWithAffiliateCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	a := f.createProduct(t, "BPC-157", "100.00", 5)
	b := f.createProduct(t, "TB-500", "130.00", 5)

	_, err := f.carts.AddItem(ctx, "s1", a.ID, 1)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "s1", b.ID, 1)
	require.NoError(t, err)
	view, err := f.carts.ApplyCode(ctx, "s1", " jane15 ")
	require.NoError(t, err)
	assert.Equal(t, "JANE15", view.Code)
	assert.Equal(t, "230.00", view.Subtotal.StringFixed(2))
	assert.Equal(t, "34.50", view.Discount.StringFixed(2))
	assert.Equal(t, "15.00", view.Shipping.StringFixed(2))
	assert.Equal(t, "210.50", view.Total.StringFixed(2))

	order, err := f.checkout.Checkout(ctx, "s1", 0, checkoutRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "230.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "34.50", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "15.00", order.ShippingAmount.StringFixed(2))
	assert.Equal(t, "210.50", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "JANE15", order.PromoCode)
	assert.Equal(t, "JANE15", order.AffiliateCode)
	assert.Equal(t, "buyer@example.com", order.CustomerEmail)
	assert.Len(t, order.Items, 2)

	stored, err := f.orders.GetByNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, models.OrderPending, stored.Status)
	assert.Equal(t, models.AccrualDone, stored.AccrualStatus)

	pa, err := f.products.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, pa.Stock)

	view, err = f.carts.View(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Empty(t, view.Code)

	// 返佣按折扣前小计计算
	tx, err := f.ledger.FindTransactionByOrder(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, jane.ID, tx.AffiliateID)
	assert.Equal(t, "230.00", tx.OrderTotal.StringFixed(2))
	assert.Equal(t, "23.00", tx.CommissionAmount.StringFixed(2))
	assert.Equal(t, "3.45", tx.PointsEarned.StringFixed(2))

	aff, _, err := f.affiliates.AdjustPoints(ctx, jane.ID, dec("-5"), "chargeback")
	require.NoError(t, err)
	assert.Equal(t, "0.00", aff.TotalPoints.StringFixed(2))
}

func TestCheckoutWithStaticCodeDoesNotAccrue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "SKU-1", "50.00", 3)

	_, err := f.carts.AddItem(ctx, "s2", p.ID, 2)
	require.NoError(t, err)
	_, err = f.carts.ApplyCode(ctx, "s2", "welcome10")
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, "s2", 0, checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "10.00", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "105.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, "WELCOME10", order.PromoCode)
	assert.Empty(t, order.AffiliateCode)

	txs, err := f.ledger.ListTransactions(ctx, ledger.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestCheckoutRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	p := f.createProduct(t, "SKU-1", "50.00", 2)

	_, err := f.checkout.Checkout(ctx, "empty", 0, checkoutRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.carts.ApplyCode(ctx, "s3", "NOPE")
	assert.ErrorIs(t, err, ErrPromoNotFound)

	_, err = f.carts.AddItem(ctx, "s3", p.ID, 3)
	assert.ErrorIs(t, err, ErrOutOfStock)
	view, err := f.carts.View(ctx, "s3")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = f.carts.AddItem(ctx, "s3", p.ID, 2)
	require.NoError(t, err)
	_, err = f.carts.ApplyCode(ctx, "s3", "JANE15")
	require.NoError(t, err)

	// 结账前推广者被停用
	_, err = f.affiliates.SetActive(ctx, jane.ID, false)
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, "s3", 0, checkoutRequest())
	assert.ErrorIs(t, err, ErrPromoNotFound)

	view, err = f.carts.View(ctx, "s3")
	require.NoError(t, err)
	assert.Empty(t, view.Code)
	assert.Len(t, view.Lines, 1)

	// 其他会话抢先买走库存
	_, err = f.carts.AddItem(ctx, "s4", p.ID, 2)
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, "s4", 0, checkoutRequest())
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, "s3", 0, checkoutRequest())
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestCartView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	p := f.createProduct(t, "SKU-1", "19.99", 10)

	view, err := f.carts.View(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, view.Shipping.IsZero())
	assert.True(t, view.Total.IsZero())

	_, err = f.carts.AddItem(ctx, "s5", p.ID, 2)
	require.NoError(t, err)
	view, err = f.carts.UpdateItem(ctx, "s5", p.ID, 3)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "59.97", view.Subtotal.StringFixed(2))

	_, err = f.carts.UpdateItem(ctx, "s5", p.ID, 11)
	assert.ErrorIs(t, err, ErrOutOfStock)
	_, err = f.carts.AddItem(ctx, "s5", 424242, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = f.carts.AddItem(ctx, "s5", p.ID, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.carts.ApplyCode(ctx, "s5", "JANE15")
	require.NoError(t, err)
	require.NoError(t, f.affiliates.Delete(ctx, jane.ID))
	view, err = f.carts.View(ctx, "s5")
	require.NoError(t, err)
	assert.Empty(t, view.Code)
	assert.True(t, view.Discount.IsZero())

	view, err = f.carts.UpdateItem(ctx, "s5", p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestClaimPromotion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.carts.ClaimPromotion(ctx, "Buyer@Example.com", "Spring")
	require.NoError(t, err)
	assert.False(t, resp.AlreadySubmitted)

	resp, err = f.carts.ClaimPromotion(ctx, "buyer@example.com ", "spring")
	require.NoError(t, err)
	assert.True(t, resp.AlreadySubmitted)

	_, err = f.carts.ClaimPromotion(ctx, "", "spring")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCancelOrderCancelsCommission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	jane := f.createJane(t)
	p := f.createProduct(t, "SKU-1", "100.00", 5)

	_, err := f.carts.AddItem(ctx, "s6", p.ID, 1)
	require.NoError(t, err)
	_, err = f.carts.ApplyCode(ctx, "s6", "JANE15")
	require.NoError(t, err)
	order, err := f.checkout.Checkout(ctx, "s6", 0, checkoutRequest())
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, order.OrderNumber, models.OrderShipped)
	assert.ErrorIs(t, err, ErrIllegalOrderTransition)

	cancelled, err := f.orders.UpdateStatus(ctx, order.OrderNumber, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	tx, err := f.ledger.FindTransactionByOrder(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCancelled, tx.Status)

	// 累计值只增不减, 报表中排除已取消的流水
	aff, err := f.affiliates.Get(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", aff.TotalCommission.StringFixed(2))

	_, err = f.orders.GetByNumber(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	list, err := f.orders.ListByEmail(ctx, "BUYER@example.com", &types.OrderListRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 1)
	assert.False(t, list.HasMore)
}

type fakeSender struct {
	err  error
	sent []string
}

func (s *fakeSender) SendMsg(_ context.Context, topic, key string, _ []byte) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, topic+"/"+key)
	return nil
}

func TestMQTrigger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createJane(t)
	ev := types.OrderCompleted{OrderNumber: "ORD-MQ", AffiliateCode: "JANE15", OrderTotal: dec("50")}

	sender := &fakeSender{}
	trigger := &MQTrigger{Sender: sender, Topic: "order_completed", Fallback: &DirectTrigger{Accrual: f.accrual}}
	require.NoError(t, trigger.Fire(ctx, ev))
	assert.Equal(t, []string{"order_completed/ORD-MQ"}, sender.sent)
	_, err := f.ledger.FindTransactionByOrder(ctx, "ORD-MQ")
	assert.Error(t, err)

	// broker 不可用时进程内结算
	sender.err = errors.New("broker down")
	require.NoError(t, trigger.Fire(ctx, ev))
	tx, err := f.ledger.FindTransactionByOrder(ctx, "ORD-MQ")
	require.NoError(t, err)
	assert.Equal(t, "5.00", tx.CommissionAmount.StringFixed(2))

	trigger.Fallback = nil
	assert.Error(t, trigger.Fire(ctx, ev))
}
