package ledger

import (
	"Storefront/dao"
	"Storefront/models"
	"Storefront/pkg/snowflake"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Remote 基于 MySQL 的账本
type Remote struct {
	DB           *gorm.DB
	AffiliateDAO *dao.Affiliate
	TxDAO        *dao.Transaction
}

func NewRemote(db *gorm.DB, affiliateDAO *dao.Affiliate, txDAO *dao.Transaction) *Remote {
	return &Remote{DB: db, AffiliateDAO: affiliateDAO, TxDAO: txDAO}
}

var _ Ledger = (*Remote)(nil)

func (r *Remote) Name() string { return "remote" }

func (r *Remote) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return classify(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classify(err)
	}
	// 表不存在同样视为不可用
	if _, err := r.AffiliateDAO.FindCount(ctx, "1 = 1"); err != nil {
		return classify(err)
	}
	return nil
}

func (r *Remote) ListAffiliates(ctx context.Context, filter AffiliateFilter) ([]*models.Affiliate, error) {
	items, err := r.AffiliateDAO.List(ctx, filter.ActiveOnly, filter.Email, filter.Keyword)
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (r *Remote) GetAffiliate(ctx context.Context, id int64) (*models.Affiliate, error) {
	aff, err := r.AffiliateDAO.FindById(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return aff, nil
}

func (r *Remote) FindAffiliateByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, ErrNotFound
	}
	aff, err := r.AffiliateDAO.FindByCode(ctx, code)
	if err != nil {
		return nil, classify(err)
	}
	return aff, nil
}

func (r *Remote) CreateAffiliate(ctx context.Context, aff *models.Affiliate) error {
	aff.Code = normalizeCode(aff.Code)
	exist, err := r.AffiliateDAO.IsExist(ctx, "code = ?", aff.Code)
	if err != nil {
		return classify(err)
	}
	if exist {
		return ErrDuplicateCode
	}
	if aff.ID == 0 {
		aff.ID = snowflake.GenID()
	}
	if err := r.AffiliateDAO.Create(ctx, aff); err != nil {
		if isDuplicate(err) {
			return ErrDuplicateCode
		}
		return classify(err)
	}
	return nil
}

func (r *Remote) UpdateAffiliate(ctx context.Context, id int64, patch models.AffiliatePatch) (*models.Affiliate, error) {
	if patch.Code != nil {
		code := normalizeCode(*patch.Code)
		patch.Code = &code
		exist, err := r.AffiliateDAO.IsExist(ctx, "code = ? AND id <> ?", code, id)
		if err != nil {
			return nil, classify(err)
		}
		if exist {
			return nil, ErrDuplicateCode
		}
	}
	if !patch.Empty() {
		if _, err := r.AffiliateDAO.UpdateById(ctx, id, patch.Columns()); err != nil {
			if isDuplicate(err) {
				return nil, ErrDuplicateCode
			}
			return nil, classify(err)
		}
	}
	return r.GetAffiliate(ctx, id)
}

func (r *Remote) DeleteAffiliate(ctx context.Context, id int64) error {
	rows, err := r.AffiliateDAO.DeleteById(ctx, id)
	if err != nil {
		return classify(err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Remote) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	items, err := r.TxDAO.List(ctx, dao.TransactionQuery{
		AffiliateID: filter.AffiliateID,
		Status:      filter.Status,
		From:        filter.From,
		To:          filter.To,
		Cursor:      filter.Cursor,
		Limit:       filter.Limit,
	})
	if err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (r *Remote) FindTransactionByOrder(ctx context.Context, orderNumber string) (*models.Transaction, error) {
	tx, err := r.TxDAO.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, classify(err)
	}
	return tx, nil
}

// CreateTransaction 只写流水, 不调整累计值
func (r *Remote) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	aff, err := r.GetAffiliate(ctx, tx.AffiliateID)
	if err != nil {
		return err
	}
	fillTransaction(aff, tx)
	if err := r.TxDAO.Create(ctx, tx); err != nil {
		if isDuplicate(err) {
			return ErrDuplicateOrder
		}
		return classify(err)
	}
	return nil
}

func (r *Remote) UpdateTransactionStatus(ctx context.Context, id int64, status string) (*models.Transaction, error) {
	current, err := r.TxDAO.FindById(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	if !models.CanTransition(current.Status, status) {
		return nil, ErrIllegalTransition
	}
	rows, err := r.TxDAO.UpdateStatus(ctx, id, current.Status, status)
	if err != nil {
		return nil, classify(err)
	}
	if rows == 0 {
		// 并发下已被其他请求改过
		return nil, ErrIllegalTransition
	}
	current.Status = status
	return current, nil
}

func (r *Remote) ApplyTransaction(ctx context.Context, tx *models.Transaction, clampPoints bool) (*models.Affiliate, error) {
	// 在副本上计算, 提交成功后再回写调用方
	row := *tx
	var result *models.Affiliate
	err := r.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		affDAO := r.AffiliateDAO.WithTx(db)
		txDAO := r.TxDAO.WithTx(db)

		exist, err := txDAO.ExistsByOrderNumber(ctx, tx.OrderNumber)
		if err != nil {
			return err
		}
		if exist {
			return ErrDuplicateOrder
		}

		aff, err := affDAO.FindForUpdate(ctx, tx.AffiliateID)
		if err != nil {
			return err
		}
		fillTransaction(aff, &row)
		applyDelta(aff, &row, clampPoints)

		if err := txDAO.Create(ctx, &row); err != nil {
			if isDuplicate(err) {
				return ErrDuplicateOrder
			}
			return err
		}
		if err := affDAO.SaveTotals(ctx, aff); err != nil {
			return err
		}
		result = aff
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			return nil, err
		}
		return nil, classify(err)
	}
	*tx = row
	return result, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqlerr.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}

// classify 把驱动错误归为业务可识别的几类
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicateCode),
		errors.Is(err, ErrDuplicateOrder), errors.Is(err, ErrIllegalTransition):
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqlerr.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var me *mysqlerr.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		// 1045 拒绝访问, 1049 库不存在, 1146 表不存在
		case 1045, 1049, 1146:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return err
}
