package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"Storefront/service"
	"Storefront/types"

	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccrual struct {
	err        error
	requeueErr error
	seen       []types.OrderCompleted
	requeued   []string
}

func (f *fakeAccrual) Accrue(_ context.Context, ev types.OrderCompleted) (*types.AccrualResult, error) {
	f.seen = append(f.seen, ev)
	if f.err != nil {
		return nil, f.err
	}
	return &types.AccrualResult{Status: types.AccrualRecorded}, nil
}

func (f *fakeAccrual) Requeue(_ context.Context, orderNumber string) error {
	f.requeued = append(f.requeued, orderNumber)
	return f.requeueErr
}

func (f *fakeAccrual) Reconcile(context.Context, time.Duration, int) (*types.ReconcileResult, error) {
	return &types.ReconcileResult{}, nil
}

func message(body string, reconsume int32) *primitive.MessageExt {
	return &primitive.MessageExt{
		Message:        primitive.Message{Body: []byte(body)},
		MsgId:          "msg-1",
		ReconsumeTimes: reconsume,
	}
}

func TestDecodeOrderCompleted(t *testing.T) {
	ev, err := DecodeOrderCompleted([]byte(`{"order_number":"ORD-1","affiliate_code":"JANE15","order_total":"230.00","customer_email":"b@example.com","completed_at":"2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", ev.OrderNumber)
	assert.Equal(t, "JANE15", ev.AffiliateCode)
	assert.Equal(t, "230.00", ev.OrderTotal.StringFixed(2))
	assert.Equal(t, 2024, ev.CompletedAt.Year())

	ev, err = DecodeOrderCompleted([]byte(`{"order_number":"ORD-2","order_total":99.5}`))
	require.NoError(t, err)
	assert.Equal(t, "99.50", ev.OrderTotal.StringFixed(2))
	assert.Empty(t, ev.AffiliateCode)

	for _, body := range []string{`not json`, `{"order_total":"1"}`, `{"order_number":"ORD-3","order_total":"abc"}`} {
		_, err := DecodeOrderCompleted([]byte(body))
		assert.ErrorIs(t, err, errMalformed, body)
	}
}

func TestHandleMessage(t *testing.T) {
	accrual := &fakeAccrual{}
	c := &AccrualConsumer{Accrual: accrual, Topic: "order_completed"}
	ctx := context.Background()

	res, err := c.handleMessage(ctx,
		message(`{"order_number":"ORD-1","affiliate_code":"JANE15","order_total":"230"}`, 0),
		message(`garbage`, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeSuccess, res)
	require.Len(t, accrual.seen, 1)

	// 另一个实例正在处理同一订单时稍后重投
	accrual.err = service.ErrAccrualInProgress
	res, err = c.handleMessage(ctx, message(`{"order_number":"ORD-1","order_total":"230"}`, 1))
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeRetryLater, res)

	accrual.err = errors.New("ledger unavailable")
	res, err = c.handleMessage(ctx, message(`{"order_number":"ORD-1","order_total":"230"}`, maxReconsume-1))
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeRetryLater, res)
	assert.Empty(t, accrual.requeued)
}

func TestHandleMessageRetriesExhausted(t *testing.T) {
	accrual := &fakeAccrual{err: errors.New("ledger unavailable")}
	c := &AccrualConsumer{Accrual: accrual, Topic: "order_completed"}
	ctx := context.Background()
	body := `{"order_number":"ORD-9","affiliate_code":"JANE15","order_total":"230"}`

	// 交给订单表上的 pending 标记后才确认消息
	res, err := c.handleMessage(ctx, message(body, maxReconsume))
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeSuccess, res)
	assert.Equal(t, []string{"ORD-9"}, accrual.requeued)

	accrual.requeueErr = errors.New("db down")
	res, err = c.handleMessage(ctx, message(body, maxReconsume+3))
	require.NoError(t, err)
	assert.Equal(t, consumer.ConsumeRetryLater, res)
	assert.Len(t, accrual.requeued, 2)
}
