package ledger

import (
	"Storefront/models"
	"Storefront/pkg/snowflake"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Local 节点本地账本. 数据常驻内存, 每次写入后整体落盘到 JSON 快照.
// path 为空时只在内存中, 用于测试.
type Local struct {
	path string

	// 写操作串行, 读操作直接走分片 map
	mu           sync.Mutex
	affiliates   cmap.ConcurrentMap[string, models.Affiliate]
	transactions cmap.ConcurrentMap[string, models.Transaction]
	orders       cmap.ConcurrentMap[string, int64]
}

type snapshot struct {
	Affiliates   []models.Affiliate   `json:"affiliates"`
	Transactions []models.Transaction `json:"transactions"`
}

var _ Ledger = (*Local)(nil)

func NewLocal(path string) (*Local, error) {
	l := &Local{
		path:         path,
		affiliates:   cmap.New[models.Affiliate](),
		transactions: cmap.New[models.Transaction](),
		orders:       cmap.New[int64](),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func (l *Local) load() error {
	if l.path == "" {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read local ledger: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return fmt.Errorf("decode local ledger %s: %w", l.path, err)
	}
	for _, a := range snap.Affiliates {
		l.affiliates.Set(key(a.ID), a)
	}
	for _, t := range snap.Transactions {
		l.transactions.Set(key(t.ID), t)
		l.orders.Set(t.OrderNumber, t.ID)
	}
	return nil
}

// persist 先写临时文件再 rename, 保证快照不会写一半
func (l *Local) persist() error {
	if l.path == "" {
		return nil
	}
	snap := snapshot{
		Affiliates:   make([]models.Affiliate, 0, l.affiliates.Count()),
		Transactions: make([]models.Transaction, 0, l.transactions.Count()),
	}
	for _, a := range l.affiliates.Items() {
		snap.Affiliates = append(snap.Affiliates, a)
	}
	for _, t := range l.transactions.Items() {
		snap.Transactions = append(snap.Transactions, t)
	}
	sort.Slice(snap.Affiliates, func(i, j int) bool { return snap.Affiliates[i].ID < snap.Affiliates[j].ID })
	sort.Slice(snap.Transactions, func(i, j int) bool { return snap.Transactions[i].ID < snap.Transactions[j].ID })

	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Ping(_ context.Context) error {
	return nil
}

func (l *Local) ListAffiliates(_ context.Context, filter AffiliateFilter) ([]*models.Affiliate, error) {
	keyword := strings.ToLower(filter.Keyword)
	items := make([]*models.Affiliate, 0, l.affiliates.Count())
	for _, a := range l.affiliates.Items() {
		if filter.ActiveOnly && !a.IsActive {
			continue
		}
		if filter.Email != "" && a.Email != filter.Email {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(a.Code), keyword) &&
			!strings.Contains(strings.ToLower(a.Name), keyword) &&
			!strings.Contains(strings.ToLower(a.Email), keyword) {
			continue
		}
		a := a
		items = append(items, &a)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (l *Local) GetAffiliate(_ context.Context, id int64) (*models.Affiliate, error) {
	a, ok := l.affiliates.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (l *Local) findByCode(code string, exceptID int64) (models.Affiliate, bool) {
	for item := range l.affiliates.IterBuffered() {
		if item.Val.ID != exceptID && item.Val.Code == code {
			return item.Val, true
		}
	}
	return models.Affiliate{}, false
}

func (l *Local) FindAffiliateByCode(_ context.Context, code string) (*models.Affiliate, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, ErrNotFound
	}
	a, ok := l.findByCode(code, 0)
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (l *Local) CreateAffiliate(_ context.Context, aff *models.Affiliate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	aff.Code = normalizeCode(aff.Code)
	if _, ok := l.findByCode(aff.Code, 0); ok {
		return ErrDuplicateCode
	}
	if aff.ID == 0 {
		aff.ID = snowflake.GenID()
	}
	now := time.Now()
	aff.CreatedAt, aff.UpdatedAt = now, now

	l.affiliates.Set(key(aff.ID), *aff)
	if err := l.persist(); err != nil {
		l.affiliates.Remove(key(aff.ID))
		return err
	}
	return nil
}

func (l *Local) UpdateAffiliate(_ context.Context, id int64, patch models.AffiliatePatch) (*models.Affiliate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.affiliates.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Code != nil {
		code := normalizeCode(*patch.Code)
		patch.Code = &code
		if _, dup := l.findByCode(code, id); dup {
			return nil, ErrDuplicateCode
		}
	}
	next := prev
	patch.Apply(&next)
	next.UpdatedAt = time.Now()

	l.affiliates.Set(key(id), next)
	if err := l.persist(); err != nil {
		l.affiliates.Set(key(id), prev)
		return nil, err
	}
	return &next, nil
}

func (l *Local) DeleteAffiliate(_ context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.affiliates.Pop(key(id))
	if !ok {
		return ErrNotFound
	}
	if err := l.persist(); err != nil {
		l.affiliates.Set(key(id), prev)
		return err
	}
	return nil
}

func (l *Local) ListTransactions(_ context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	items := make([]*models.Transaction, 0)
	for _, t := range l.transactions.Items() {
		if filter.AffiliateID > 0 && t.AffiliateID != filter.AffiliateID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && t.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !t.CreatedAt.Before(filter.To) {
			continue
		}
		if filter.Cursor > 0 && t.ID >= filter.Cursor {
			continue
		}
		t := t
		items = append(items, &t)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (l *Local) FindTransactionByOrder(_ context.Context, orderNumber string) (*models.Transaction, error) {
	id, ok := l.orders.Get(orderNumber)
	if !ok {
		return nil, ErrNotFound
	}
	t, ok := l.transactions.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (l *Local) insertTransaction(tx *models.Transaction) {
	now := time.Now()
	tx.CreatedAt, tx.UpdatedAt = now, now
	l.transactions.Set(key(tx.ID), *tx)
	l.orders.Set(tx.OrderNumber, tx.ID)
}

func (l *Local) removeTransaction(tx *models.Transaction) {
	l.transactions.Remove(key(tx.ID))
	l.orders.Remove(tx.OrderNumber)
}

func (l *Local) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	aff, ok := l.affiliates.Get(key(tx.AffiliateID))
	if !ok {
		return ErrNotFound
	}
	if l.orders.Has(tx.OrderNumber) {
		return ErrDuplicateOrder
	}
	fillTransaction(&aff, tx)
	l.insertTransaction(tx)
	if err := l.persist(); err != nil {
		l.removeTransaction(tx)
		return err
	}
	return nil
}

func (l *Local) UpdateTransactionStatus(_ context.Context, id int64, status string) (*models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.transactions.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	if !models.CanTransition(prev.Status, status) {
		return nil, ErrIllegalTransition
	}
	next := prev
	next.Status = status
	next.UpdatedAt = time.Now()
	l.transactions.Set(key(id), next)
	if err := l.persist(); err != nil {
		l.transactions.Set(key(id), prev)
		return nil, err
	}
	return &next, nil
}

func (l *Local) ApplyTransaction(_ context.Context, tx *models.Transaction, clampPoints bool) (*models.Affiliate, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.orders.Has(tx.OrderNumber) {
		return nil, ErrDuplicateOrder
	}
	prev, ok := l.affiliates.Get(key(tx.AffiliateID))
	if !ok {
		return nil, ErrNotFound
	}
	next := prev
	row := *tx
	fillTransaction(&next, &row)
	applyDelta(&next, &row, clampPoints)

	l.insertTransaction(&row)
	l.affiliates.Set(key(next.ID), next)
	if err := l.persist(); err != nil {
		l.removeTransaction(&row)
		l.affiliates.Set(key(prev.ID), prev)
		return nil, err
	}
	*tx = row
	return &next, nil
}
