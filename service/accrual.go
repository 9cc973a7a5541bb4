package service

import (
	"Storefront/config"
	"Storefront/dao"
	"Storefront/dao/cache"
	"Storefront/ledger"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/mailer"
	"Storefront/pkg/money"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IAccrualService interface {
	Accrue(ctx context.Context, ev types.OrderCompleted) (*types.AccrualResult, error)
	Requeue(ctx context.Context, orderNumber string) error
	Reconcile(ctx context.Context, olderThan time.Duration, limit int) (*types.ReconcileResult, error)
}

// AccrualService 订单完成后给推广者记返佣和积分, 按订单号幂等.
// 订单表的 accrual_status 记录结算进度, 未完成的由 Reconcile 补偿
type AccrualService struct {
	Shop     *config.Shop
	Ledger   ledger.Ledger
	Locks    *cache.AccrualLockStorage
	OrderDAO *dao.Order
	Notifier *LedgerNotifier
	Mailer   mailer.Sender
}

var _ IAccrualService = (*AccrualService)(nil)

func (a *AccrualService) Accrue(ctx context.Context, ev types.OrderCompleted) (*types.AccrualResult, error) {
	code := utils.NormalizeCode(ev.AffiliateCode)
	if code == "" || ev.OrderNumber == "" {
		accrualTotal.WithLabelValues(string(types.AccrualSkipped)).Inc()
		return &types.AccrualResult{Status: types.AccrualSkipped}, nil
	}

	// 幂等去重：done + lock 两段式
	done, err := a.Locks.IsDone(ctx, ev.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("check accrual done: %w", err)
	}
	if done {
		a.settle(ctx, ev.OrderNumber, models.AccrualDone)
		return a.duplicate(), nil
	}
	ok, err := a.Locks.Lock(ctx, ev.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("acquire accrual lock: %w", err)
	}
	if !ok {
		return nil, ErrAccrualInProgress
	}
	defer func() {
		_ = a.Locks.Unlock(context.Background(), ev.OrderNumber)
	}()

	if _, err := a.Ledger.FindTransactionByOrder(ctx, ev.OrderNumber); err == nil {
		a.markDone(ctx, ev.OrderNumber)
		return a.duplicate(), nil
	} else if !errors.Is(err, ledger.ErrNotFound) {
		return nil, err
	}

	// 订单已取消则不再结算
	cancelled, err := a.orderCancelled(ctx, ev.OrderNumber)
	if err != nil {
		return nil, err
	}
	if cancelled {
		a.settle(ctx, ev.OrderNumber, models.AccrualSkipped)
		accrualTotal.WithLabelValues(string(types.AccrualSkipped)).Inc()
		return &types.AccrualResult{Status: types.AccrualSkipped}, nil
	}

	// 停用的推广者照常结算: 下单时优惠码有效即可
	aff, err := a.Ledger.FindAffiliateByCode(ctx, code)
	if errors.Is(err, ledger.ErrNotFound) {
		log.L.Warn("accrual skipped, affiliate not found",
			zap.String("order_number", ev.OrderNumber),
			zap.String("code", code),
		)
		a.settle(ctx, ev.OrderNumber, models.AccrualSkipped)
		accrualTotal.WithLabelValues(string(types.AccrualSkipped)).Inc()
		return &types.AccrualResult{Status: types.AccrualSkipped}, nil
	}
	if err != nil {
		return nil, err
	}

	base := money.NonNegative(ev.OrderTotal)
	tx := &models.Transaction{
		ID:               snowflake.GenID(),
		AffiliateID:      aff.ID,
		OrderNumber:      ev.OrderNumber,
		OrderTotal:       money.Round2(base),
		CommissionAmount: money.Rate(base, a.Shop.CommissionRate),
		PointsEarned:     money.Rate(base, a.Shop.PointsRate),
		CustomerEmail:    utils.NormalizeEmail(ev.CustomerEmail),
		Kind:             models.TransactionKindOrder,
		Status:           models.TransactionPending,
	}
	updated, err := a.Ledger.ApplyTransaction(ctx, tx, false)
	if errors.Is(err, ledger.ErrDuplicateOrder) {
		a.markDone(ctx, ev.OrderNumber)
		return a.duplicate(), nil
	}
	if err != nil {
		accrualTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	a.markDone(ctx, ev.OrderNumber)
	accrualTotal.WithLabelValues(string(types.AccrualRecorded)).Inc()
	log.L.Info("commission accrued",
		zap.String("order_number", tx.OrderNumber),
		zap.String("affiliate", tx.AffiliateCode),
		zap.String("commission", tx.CommissionAmount.StringFixed(2)),
		zap.String("points", tx.PointsEarned.StringFixed(2)),
	)

	a.Notifier.Notify(ctx, types.EntityTransaction, types.ActionCreated, tx.ID)
	a.Notifier.Notify(ctx, types.EntityAffiliate, types.ActionUpdated, updated.ID)
	a.sendEarnedMail(ctx, updated, tx)

	return &types.AccrualResult{Status: types.AccrualRecorded, Transaction: tx}, nil
}

func (a *AccrualService) duplicate() *types.AccrualResult {
	accrualTotal.WithLabelValues(string(types.AccrualDuplicate)).Inc()
	return &types.AccrualResult{Status: types.AccrualDuplicate}
}

func (a *AccrualService) markDone(ctx context.Context, orderNumber string) {
	if err := a.Locks.MarkDone(ctx, orderNumber); err != nil {
		// 账本唯一约束兜底, 这里失败不影响结果
		log.L.Warn("mark accrual done failed", zap.String("order_number", orderNumber), zap.Error(err))
	}
	a.settle(ctx, orderNumber, models.AccrualDone)
}

// settle 结算有结果后更新订单的 accrual_status. 失败只记日志, 下次 Reconcile 会按重复订单收敛
func (a *AccrualService) settle(ctx context.Context, orderNumber, status string) {
	if a.OrderDAO == nil {
		return
	}
	if _, err := a.OrderDAO.SetAccrualStatus(ctx, orderNumber, models.AccrualPending, status); err != nil {
		log.L.Warn("update order accrual status failed",
			zap.String("order_number", orderNumber),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}

func (a *AccrualService) orderCancelled(ctx context.Context, orderNumber string) (bool, error) {
	if a.OrderDAO == nil {
		return false, nil
	}
	order, err := a.OrderDAO.FindByNumber(ctx, orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load order: %w", err)
	}
	return order.Status == models.OrderCancelled, nil
}

// Requeue 把结算交还给订单表上的 pending 标记, 由 Reconcile 接手. 已结算的订单直接返回
func (a *AccrualService) Requeue(ctx context.Context, orderNumber string) error {
	if a.OrderDAO == nil {
		return errors.New("order store not configured")
	}
	order, err := a.OrderDAO.FindByNumber(ctx, orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	}
	if err != nil {
		return err
	}
	if order.AccrualStatus == models.AccrualDone || order.AccrualStatus == models.AccrualSkipped {
		return nil
	}
	if _, err := a.OrderDAO.SetAccrualStatus(ctx, orderNumber, "", models.AccrualPending); err != nil {
		return err
	}
	log.L.Warn("accrual requeued for reconcile", zap.String("order_number", orderNumber))
	return nil
}

// Reconcile 重新结算仍为 pending 的订单. olderThan 避开正在处理中的订单, 为 0 时不过滤
func (a *AccrualService) Reconcile(ctx context.Context, olderThan time.Duration, limit int) (*types.ReconcileResult, error) {
	if a.OrderDAO == nil {
		return nil, errors.New("order store not configured")
	}
	var before time.Time
	if olderThan > 0 {
		before = time.Now().Add(-olderThan)
	}
	orders, err := a.OrderDAO.ListAccrualPending(ctx, before, limit)
	if err != nil {
		return nil, err
	}

	result := &types.ReconcileResult{Scanned: len(orders)}
	for _, order := range orders {
		res, err := a.Accrue(ctx, types.OrderCompleted{
			OrderNumber:   order.OrderNumber,
			AffiliateCode: order.AffiliateCode,
			OrderTotal:    order.Subtotal,
			CustomerEmail: order.CustomerEmail,
			CompletedAt:   order.CreatedAt,
		})
		if err != nil {
			log.L.Warn("reconcile accrual failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
			result.Failed = append(result.Failed, order.OrderNumber)
			continue
		}
		switch res.Status {
		case types.AccrualRecorded:
			result.Recorded++
		case types.AccrualDuplicate:
			result.Duplicate++
		default:
			result.Skipped++
		}
	}
	if result.Scanned > 0 {
		log.L.Info("accrual reconciled",
			zap.Int("scanned", result.Scanned),
			zap.Int("recorded", result.Recorded),
			zap.Int("duplicate", result.Duplicate),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", len(result.Failed)),
		)
	}
	return result, nil
}

func (a *AccrualService) sendEarnedMail(ctx context.Context, aff *models.Affiliate, tx *models.Transaction) {
	if a.Mailer == nil || aff.Email == "" {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", aff.Name)
	fmt.Fprintf(&b, "Order %s used your code %s.\n", tx.OrderNumber, aff.Code)
	fmt.Fprintf(&b, "Commission: %s %s (pending)\n", tx.CommissionAmount.StringFixed(2), a.Shop.Currency)
	fmt.Fprintf(&b, "Points: %s\n\n", tx.PointsEarned.StringFixed(2))
	fmt.Fprintf(&b, "Total commission to date: %s %s\n", aff.TotalCommission.StringFixed(2), a.Shop.Currency)

	go func() {
		if err := a.Mailer.SendEmail(context.Background(), aff.Email, "You earned a commission", b.String()); err != nil {
			log.L.Warn("send commission mail failed", zap.String("to", aff.Email), zap.Error(err))
		}
	}()
}
