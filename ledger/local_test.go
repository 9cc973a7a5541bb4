package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"Storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")

	l, err := NewLocal(path)
	require.NoError(t, err)
	jane := seedJane(t, l)
	_, err = l.ApplyTransaction(ctx, &models.Transaction{
		AffiliateID: jane.ID, OrderNumber: "ORD-9", OrderTotal: dec("230"),
		CommissionAmount: dec("23"), PointsEarned: dec("3.45"),
	}, false)
	require.NoError(t, err)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reloaded, err := NewLocal(path)
	require.NoError(t, err)
	got, err := reloaded.FindAffiliateByCode(ctx, "jane15")
	require.NoError(t, err)
	assert.True(t, got.TotalPoints.Equal(dec("3.45")))
	assert.True(t, got.TotalCommission.Equal(dec("23")))

	tx, err := reloaded.FindTransactionByOrder(ctx, "ORD-9")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, tx.AffiliateID)

	_, err = reloaded.ApplyTransaction(ctx, &models.Transaction{AffiliateID: jane.ID, OrderNumber: "ORD-9"}, false)
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestLocal_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := NewLocal(path)
	assert.Error(t, err)
}

func TestLocal_WriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	// 目标路径是目录, rename 必然失败
	path := filepath.Join(dir, "ledger.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	l := newLocal(t)
	jane := seedJane(t, l)
	l.path = path

	_, err := l.UpdateAffiliate(context.Background(), jane.ID, models.AffiliatePatch{Name: strPtr("Changed")})
	assert.ErrorIs(t, err, ErrUnavailable)

	got, err := l.GetAffiliate(context.Background(), jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)
}
