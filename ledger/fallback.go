package ledger

import (
	"Storefront/models"
	"Storefront/pkg/log"
	"context"
	"errors"

	"go.uber.org/zap"
)

// Fallback 优先走 Primary, 只有在 Primary 不可用时才落到 Secondary.
// 校验失败、未找到、重复等业务错误原样返回.
type Fallback struct {
	Primary   Ledger
	Secondary Ledger
}

var _ Ledger = (*Fallback)(nil)

func NewFallback(primary, secondary Ledger) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

func (f *Fallback) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

func (f *Fallback) Ping(ctx context.Context) error {
	return call(f, "ping", func(l Ledger) error { return l.Ping(ctx) })
}

// call 执行一次带降级的调用. 两边都失败时返回合并后的错误
func call(f *Fallback, op string, fn func(l Ledger) error) error {
	err := fn(f.Primary)
	if err == nil || !IsUnavailable(err) {
		return err
	}
	log.L.Warn("ledger primary unavailable, using secondary",
		zap.String("op", op),
		zap.String("primary", f.Primary.Name()),
		zap.String("secondary", f.Secondary.Name()),
		zap.Error(err),
	)
	if err2 := fn(f.Secondary); err2 != nil {
		if IsUnavailable(err2) {
			return errors.Join(err, err2)
		}
		return err2
	}
	return nil
}

func (f *Fallback) ListAffiliates(ctx context.Context, filter AffiliateFilter) (items []*models.Affiliate, err error) {
	err = call(f, "list_affiliates", func(l Ledger) (e error) {
		items, e = l.ListAffiliates(ctx, filter)
		return
	})
	return
}

func (f *Fallback) GetAffiliate(ctx context.Context, id int64) (aff *models.Affiliate, err error) {
	err = call(f, "get_affiliate", func(l Ledger) (e error) {
		aff, e = l.GetAffiliate(ctx, id)
		return
	})
	return
}

func (f *Fallback) FindAffiliateByCode(ctx context.Context, code string) (aff *models.Affiliate, err error) {
	err = call(f, "find_affiliate_by_code", func(l Ledger) (e error) {
		aff, e = l.FindAffiliateByCode(ctx, code)
		return
	})
	return
}

func (f *Fallback) CreateAffiliate(ctx context.Context, aff *models.Affiliate) error {
	return call(f, "create_affiliate", func(l Ledger) error {
		return l.CreateAffiliate(ctx, aff)
	})
}

func (f *Fallback) UpdateAffiliate(ctx context.Context, id int64, patch models.AffiliatePatch) (aff *models.Affiliate, err error) {
	err = call(f, "update_affiliate", func(l Ledger) (e error) {
		aff, e = l.UpdateAffiliate(ctx, id, patch)
		return
	})
	return
}

func (f *Fallback) DeleteAffiliate(ctx context.Context, id int64) error {
	return call(f, "delete_affiliate", func(l Ledger) error {
		return l.DeleteAffiliate(ctx, id)
	})
}

func (f *Fallback) ListTransactions(ctx context.Context, filter TransactionFilter) (items []*models.Transaction, err error) {
	err = call(f, "list_transactions", func(l Ledger) (e error) {
		items, e = l.ListTransactions(ctx, filter)
		return
	})
	return
}

func (f *Fallback) FindTransactionByOrder(ctx context.Context, orderNumber string) (tx *models.Transaction, err error) {
	err = call(f, "find_transaction_by_order", func(l Ledger) (e error) {
		tx, e = l.FindTransactionByOrder(ctx, orderNumber)
		return
	})
	return
}

func (f *Fallback) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return call(f, "create_transaction", func(l Ledger) error {
		return l.CreateTransaction(ctx, tx)
	})
}

func (f *Fallback) UpdateTransactionStatus(ctx context.Context, id int64, status string) (tx *models.Transaction, err error) {
	err = call(f, "update_transaction_status", func(l Ledger) (e error) {
		tx, e = l.UpdateTransactionStatus(ctx, id, status)
		return
	})
	return
}

func (f *Fallback) ApplyTransaction(ctx context.Context, tx *models.Transaction, clampPoints bool) (aff *models.Affiliate, err error) {
	err = call(f, "apply_transaction", func(l Ledger) (e error) {
		aff, e = l.ApplyTransaction(ctx, tx, clampPoints)
		return
	})
	return
}
