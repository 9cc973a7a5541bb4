package service

import (
	"Storefront/dao"
	"Storefront/ledger"
	"Storefront/models"
	"Storefront/pkg/log"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IOrderService interface {
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	ListByEmail(ctx context.Context, email string, req *types.OrderListRequest) (*types.OrderListResponse, error)
	List(ctx context.Context, req *types.OrderListRequest) (*types.OrderListResponse, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) (*models.Order, error)
}

type OrderService struct {
	OrderDAO *dao.Order
	Ledger   ledger.Ledger
	Notifier *LedgerNotifier
}

var _ IOrderService = (*OrderService)(nil)

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	order, err := s.OrderDAO.FindByNumber(ctx, orderNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *OrderService) ListByEmail(ctx context.Context, email string, req *types.OrderListRequest) (*types.OrderListResponse, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return &types.OrderListResponse{Orders: []*models.Order{}}, nil
	}
	return s.list(ctx, dao.OrderQuery{Email: email, Status: req.Status, Cursor: req.Cursor, Limit: req.Limit})
}

func (s *OrderService) List(ctx context.Context, req *types.OrderListRequest) (*types.OrderListResponse, error) {
	return s.list(ctx, dao.OrderQuery{Status: req.Status, Cursor: req.Cursor, Limit: req.Limit})
}

func (s *OrderService) list(ctx context.Context, q dao.OrderQuery) (*types.OrderListResponse, error) {
	limit := pageSize(q.Limit)
	q.Limit = limit + 1
	orders, err := s.OrderDAO.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := &types.OrderListResponse{Orders: orders}
	if len(orders) > limit {
		resp.Orders = orders[:limit]
		resp.HasMore = true
	}
	if n := len(resp.Orders); n > 0 {
		resp.NextCursor = resp.Orders[n-1].ID
	}
	return resp, nil
}

// UpdateStatus 订单取消时, 尚未结算的返佣一并取消.
// 返佣取消失败时订单保持 cancelled 并返回错误, 再次提交 cancelled 会重试返佣取消
func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber, status string) (*models.Order, error) {
	order, err := s.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	retryCancel := order.Status == models.OrderCancelled && status == models.OrderCancelled
	if !retryCancel {
		if !models.CanMoveOrder(order.Status, status) {
			return nil, ErrIllegalOrderTransition
		}
		rows, err := s.OrderDAO.UpdateStatus(ctx, order.ID, order.Status, status)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrIllegalOrderTransition
		}
		order.Status = status
	}

	if status == models.OrderCancelled && order.AffiliateCode != "" {
		if err := s.cancelCommission(ctx, order); err != nil {
			log.L.Warn("cancel commission failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
			return order, fmt.Errorf("%w: %w", ErrCommissionNotCancelled, err)
		}
	}
	return order, nil
}

func (s *OrderService) cancelCommission(ctx context.Context, order *models.Order) error {
	// 未结算的订单不再补偿
	if order.AccrualStatus == models.AccrualPending {
		if _, err := s.OrderDAO.SetAccrualStatus(ctx, order.OrderNumber, models.AccrualPending, models.AccrualSkipped); err != nil {
			return err
		}
		order.AccrualStatus = models.AccrualSkipped
	}

	tx, err := s.Ledger.FindTransactionByOrder(ctx, order.OrderNumber)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup commission: %w", err)
	}
	if tx.Status != models.TransactionPending {
		return nil
	}
	if _, err := s.Ledger.UpdateTransactionStatus(ctx, tx.ID, models.TransactionCancelled); err != nil {
		return fmt.Errorf("cancel commission: %w", err)
	}
	s.Notifier.Notify(ctx, types.EntityTransaction, types.ActionUpdated, tx.ID)
	return nil
}
