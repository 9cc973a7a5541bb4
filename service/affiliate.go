package service

import (
	"Storefront/ledger"
	"Storefront/models"
	"Storefront/pkg/money"
	"Storefront/pkg/snowflake"
	"Storefront/pkg/utils"
	"Storefront/types"
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

var (
	codePattern    = regexp.MustCompile(`^[A-Z0-9]{3,32}$`)
	maxDiscountPct = decimal.NewFromInt(100)
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type IAffiliateService interface {
	List(ctx context.Context, req *types.AffiliateListRequest) ([]*models.Affiliate, error)
	Get(ctx context.Context, id int64) (*models.Affiliate, error)
	Create(ctx context.Context, req *types.CreateAffiliateRequest) (*models.Affiliate, error)
	Update(ctx context.Context, id int64, req *types.UpdateAffiliateRequest) (*models.Affiliate, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.Affiliate, error)
	Delete(ctx context.Context, id int64) error
	AdjustPoints(ctx context.Context, id int64, delta decimal.Decimal, reason string) (*models.Affiliate, *models.Transaction, error)
	ListTransactions(ctx context.Context, req *types.TransactionListRequest) (*types.TransactionListResponse, error)
	UpdateTransactionStatus(ctx context.Context, id int64, status string) (*models.Transaction, error)
	Dashboard(ctx context.Context) (*types.Dashboard, error)
	MyAccount(ctx context.Context, email string) (*types.MyAccountResponse, error)
}

type AffiliateService struct {
	Ledger   ledger.Ledger
	Promo    IPromoService
	Notifier *LedgerNotifier
}

var _ IAffiliateService = (*AffiliateService)(nil)

func notFound(err error) error {
	if errors.Is(err, ledger.ErrNotFound) {
		return ErrAffiliateNotFound
	}
	return err
}

func (s *AffiliateService) List(ctx context.Context, req *types.AffiliateListRequest) ([]*models.Affiliate, error) {
	return s.Ledger.ListAffiliates(ctx, ledger.AffiliateFilter{
		ActiveOnly: req.ActiveOnly,
		Keyword:    strings.TrimSpace(req.Keyword),
	})
}

func (s *AffiliateService) Get(ctx context.Context, id int64) (*models.Affiliate, error) {
	aff, err := s.Ledger.GetAffiliate(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return aff, nil
}

// checkCode 格式校验以及与静态折扣码的冲突检查, 推广者之间的唯一性由账本保证
func (s *AffiliateService) checkCode(raw string) (string, error) {
	code := utils.NormalizeCode(raw)
	if code == "" {
		return "", invalid("code", "required")
	}
	if !codePattern.MatchString(code) {
		return "", invalid("code", "must be 3-32 letters or digits")
	}
	if s.Promo != nil && s.Promo.IsStaticCode(code) {
		return "", ErrDuplicateCode
	}
	return code, nil
}

func checkDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(maxDiscountPct) {
		return invalid("discount_percent", "must be between 0 and 100")
	}
	return nil
}

func (s *AffiliateService) Create(ctx context.Context, req *types.CreateAffiliateRequest) (*models.Affiliate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "required")
	}
	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		return nil, invalid("email", "required")
	}
	code, err := s.checkCode(req.Code)
	if err != nil {
		return nil, err
	}
	if err := checkDiscount(req.DiscountPercent); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	aff := &models.Affiliate{
		ID:              snowflake.GenID(),
		Code:            code,
		Name:            name,
		Email:           email,
		DiscountPercent: money.Round2(req.DiscountPercent),
		IsActive:        active,
		Notes:           strings.TrimSpace(req.Notes),
	}
	if err := s.Ledger.CreateAffiliate(ctx, aff); err != nil {
		return nil, err
	}
	s.Notifier.Notify(ctx, types.EntityAffiliate, types.ActionCreated, aff.ID)
	return aff, nil
}

func (s *AffiliateService) Update(ctx context.Context, id int64, req *types.UpdateAffiliateRequest) (*models.Affiliate, error) {
	var patch models.AffiliatePatch
	if req.Code != nil {
		code, err := s.checkCode(*req.Code)
		if err != nil {
			return nil, err
		}
		patch.Code = &code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name", "required")
		}
		patch.Name = &name
	}
	if req.Email != nil {
		email := utils.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, invalid("email", "required")
		}
		patch.Email = &email
	}
	if req.DiscountPercent != nil {
		if err := checkDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		pct := money.Round2(*req.DiscountPercent)
		patch.DiscountPercent = &pct
	}
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		patch.Notes = &notes
	}
	patch.IsActive = req.IsActive

	if patch.Empty() {
		return s.Get(ctx, id)
	}
	aff, err := s.Ledger.UpdateAffiliate(ctx, id, patch)
	if err != nil {
		return nil, notFound(err)
	}
	s.Notifier.Notify(ctx, types.EntityAffiliate, types.ActionUpdated, aff.ID)
	return aff, nil
}

func (s *AffiliateService) SetActive(ctx context.Context, id int64, active bool) (*models.Affiliate, error) {
	return s.Update(ctx, id, &types.UpdateAffiliateRequest{IsActive: &active})
}

// Delete 直接删除推广者, 历史流水保留
func (s *AffiliateService) Delete(ctx context.Context, id int64) error {
	if err := s.Ledger.DeleteAffiliate(ctx, id); err != nil {
		return notFound(err)
	}
	s.Notifier.Notify(ctx, types.EntityAffiliate, types.ActionDeleted, id)
	return nil
}

// AdjustPoints 人工调整积分, 记一条已结算的调整流水, 积分不会被扣成负数
func (s *AffiliateService) AdjustPoints(ctx context.Context, id int64, delta decimal.Decimal, reason string) (*models.Affiliate, *models.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, nil, invalid("reason", "required")
	}
	delta = money.Round2(delta)
	if delta.IsZero() {
		return nil, nil, invalid("delta", "must not be zero")
	}

	txID := snowflake.GenID()
	tx := &models.Transaction{
		ID:               txID,
		AffiliateID:      id,
		OrderNumber:      utils.GenAdjustmentNumber(txID),
		OrderTotal:       decimal.Zero,
		CommissionAmount: decimal.Zero,
		PointsEarned:     delta,
		Kind:             models.TransactionKindAdjustment,
		Reason:           reason,
		Status:           models.TransactionPaid,
	}
	aff, err := s.Ledger.ApplyTransaction(ctx, tx, true)
	if err != nil {
		return nil, nil, notFound(err)
	}
	s.Notifier.Notify(ctx, types.EntityTransaction, types.ActionCreated, tx.ID)
	s.Notifier.Notify(ctx, types.EntityAffiliate, types.ActionUpdated, aff.ID)
	return aff, tx, nil
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func (s *AffiliateService) ListTransactions(ctx context.Context, req *types.TransactionListRequest) (*types.TransactionListResponse, error) {
	limit := pageSize(req.Limit)
	// 多取一条判断是否还有下一页
	items, err := s.Ledger.ListTransactions(ctx, ledger.TransactionFilter{
		AffiliateID: req.AffiliateID,
		Status:      req.Status,
		Cursor:      req.Cursor,
		Limit:       limit + 1,
	})
	if err != nil {
		return nil, err
	}
	resp := &types.TransactionListResponse{Items: items}
	if len(items) > limit {
		resp.Items = items[:limit]
		resp.HasMore = true
	}
	if n := len(resp.Items); n > 0 {
		resp.NextCursor = resp.Items[n-1].ID
	}
	return resp, nil
}

func (s *AffiliateService) UpdateTransactionStatus(ctx context.Context, id int64, status string) (*models.Transaction, error) {
	if status != models.TransactionPaid && status != models.TransactionCancelled {
		return nil, ErrIllegalTransition
	}
	tx, err := s.Ledger.UpdateTransactionStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.Notifier.Notify(ctx, types.EntityTransaction, types.ActionUpdated, tx.ID)
	return tx, nil
}

// Dashboard 推广者累计与待结算流水并发读取
func (s *AffiliateService) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	var (
		affiliates []*models.Affiliate
		pending    []*models.Transaction
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		affiliates, err = s.Ledger.ListAffiliates(ctx, ledger.AffiliateFilter{})
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		pending, err = s.Ledger.ListTransactions(ctx, ledger.TransactionFilter{Status: models.TransactionPending})
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	d := &types.Dashboard{
		Affiliates:          len(affiliates),
		PendingTransactions: len(pending),
		Ledger:              s.Ledger.Name(),
	}
	for _, a := range affiliates {
		if a.IsActive {
			d.ActiveAffiliates++
		}
		d.TotalPoints = d.TotalPoints.Add(a.TotalPoints)
		d.TotalCommission = d.TotalCommission.Add(a.TotalCommission)
		d.TotalRevenue = d.TotalRevenue.Add(a.TotalRevenue)
		d.TotalOrders += a.TotalOrders
	}
	for _, t := range pending {
		d.PendingCommission = d.PendingCommission.Add(t.CommissionAmount)
	}
	return d, nil
}

// MyAccount 推广者自助查看, 按登录邮箱匹配
func (s *AffiliateService) MyAccount(ctx context.Context, email string) (*types.MyAccountResponse, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrNotAffiliate
	}
	items, err := s.Ledger.ListAffiliates(ctx, ledger.AffiliateFilter{Email: email})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotAffiliate
	}
	aff := items[0]
	txs, err := s.Ledger.ListTransactions(ctx, ledger.TransactionFilter{AffiliateID: aff.ID, Limit: 50})
	if err != nil {
		return nil, err
	}
	return &types.MyAccountResponse{Affiliate: aff, Transactions: txs}, nil
}
