package service

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"context"
	"time"

	"go.uber.org/zap"
)

// AccrualReconciler 定时补偿 accrual_status 仍为 pending 的订单
type AccrualReconciler struct {
	Shop    *config.Shop
	Accrual IAccrualService
}

func (r *AccrualReconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.Shop.ReconcileInterval)
	defer ticker.Stop()
	log.L.Info("accrual reconciler started",
		zap.Duration("interval", r.Shop.ReconcileInterval),
		zap.Duration("after", r.Shop.ReconcileAfter),
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Accrual.Reconcile(ctx, r.Shop.ReconcileAfter, r.Shop.ReconcileBatch); err != nil {
				log.L.Warn("accrual reconcile round failed", zap.Error(err))
			}
		}
	}
}
