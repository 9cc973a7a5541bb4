// Package ledger 推广者与返佣流水的存储. Remote 走 MySQL, Local 是节点本地文件,
// 两者对外行为一致, 启动时由 Select 选定.
package ledger

import (
	"Storefront/models"
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("ledger: record not found")
	ErrDuplicateCode     = errors.New("ledger: affiliate code already exists")
	ErrDuplicateOrder    = errors.New("ledger: order already recorded")
	ErrIllegalTransition = errors.New("ledger: illegal transaction status transition")
	// ErrUnavailable 存储不可达或实体不受支持, 只有这一类错误会触发降级
	ErrUnavailable = errors.New("ledger: store unavailable")
)

// AffiliateFilter 零值字段不参与过滤
type AffiliateFilter struct {
	ActiveOnly bool
	Email      string
	Keyword    string
}

type TransactionFilter struct {
	AffiliateID int64
	Status      string
	From        time.Time
	To          time.Time
	Cursor      int64
	Limit       int
}

type Ledger interface {
	Name() string
	Ping(ctx context.Context) error

	ListAffiliates(ctx context.Context, filter AffiliateFilter) ([]*models.Affiliate, error)
	GetAffiliate(ctx context.Context, id int64) (*models.Affiliate, error)
	FindAffiliateByCode(ctx context.Context, code string) (*models.Affiliate, error)
	CreateAffiliate(ctx context.Context, aff *models.Affiliate) error
	UpdateAffiliate(ctx context.Context, id int64, patch models.AffiliatePatch) (*models.Affiliate, error)
	DeleteAffiliate(ctx context.Context, id int64) error

	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
	FindTransactionByOrder(ctx context.Context, orderNumber string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	UpdateTransactionStatus(ctx context.Context, id int64, status string) (*models.Transaction, error)

	// ApplyTransaction 写入流水并把增量累加到推广者, 同一订单号只能记一次.
	// clampPoints 为 true 时积分不会低于 0, tx.PointsEarned 会被改成实际生效的增量.
	ApplyTransaction(ctx context.Context, tx *models.Transaction, clampPoints bool) (*models.Affiliate, error)
}

// IsUnavailable 是否应该降级到备用存储
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
