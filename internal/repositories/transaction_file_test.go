package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

func TestTransactionFileRepository_SaveWritesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "file.json")
	repo := NewTransactionFileRepository(path, models.NewFactory(models.StorageFile, nil))

	created := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	txn := newTxn("a", created, 3, 1)
	txn.Amount = decimal.RequireFromString("12.34")
	require.NoError(t, repo.Save(ctx, txn))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "Transaction.a")

	obj := raw["Transaction.a"]
	assert.Equal(t, "Transaction", obj["__class__"])
	assert.Equal(t, "2024-03-04T05:06:07.000000", obj["created_at"])
	assert.Equal(t, "12.34", obj["amount"])
	assert.Equal(t, float64(3), obj["user_id"])
}

func TestTransactionFileRepository_Reload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "file.json")
	factory := models.NewFactory(models.StorageFile, nil)

	first := NewTransactionFileRepository(path, factory)
	created := time.Date(2024, 3, 4, 5, 6, 7, 123456000, time.UTC)
	txn := newTxn("a", created, 3, 1)
	txn.Amount = decimal.RequireFromString("0.10")
	txn.DPC = 100
	txn.CPC = 200
	txn.EmployerID = 5
	require.NoError(t, first.Save(ctx, txn))
	require.NoError(t, first.Save(ctx, newTxn("b", created, 4, 0)))
	require.NoError(t, first.Delete(ctx, "b"))

	second := NewTransactionFileRepository(path, factory)
	require.NoError(t, second.Reload(ctx))

	n, err := second.Count(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := second.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, created, got.UpdatedAt)
	assert.True(t, decimal.RequireFromString("0.1").Equal(got.Amount))
	assert.Equal(t, int64(100), got.DPC)
	assert.Equal(t, int64(200), got.CPC)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, 1, got.Reviewed)
	assert.Equal(t, int64(5), got.EmployerID)
}

func TestTransactionFileRepository_ReloadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	repo := NewTransactionFileRepository(path, models.NewFactory(models.StorageFile, nil))

	require.NoError(t, repo.Reload(context.Background()))
	n, err := repo.Count(context.Background(), models.TransactionFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransactionFileRepository_ReloadErrors(t *testing.T) {
	factory := models.NewFactory(models.StorageFile, nil)

	t.Run("corrupt json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		repo := NewTransactionFileRepository(path, factory)
		assert.Error(t, repo.Reload(context.Background()))
	})

	t.Run("unknown class", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.json")
		content := `{"Amenity.1": {"__class__": "Amenity", "id": "1", "name": "wifi"}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		repo := NewTransactionFileRepository(path, factory)
		assert.ErrorIs(t, repo.Reload(context.Background()), models.ErrUnknownClass)
	})

	t.Run("bad attribute", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.json")
		content := `{"Transaction.1": {"__class__": "Transaction", "id": "1", "amount": "many"}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		repo := NewTransactionFileRepository(path, factory)
		assert.ErrorIs(t, repo.Reload(context.Background()), models.ErrInvalidAttribute)
	})
}

func TestTransactionFileRepository_DeleteMissingLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "file.json")
	repo := NewTransactionFileRepository(path, models.NewFactory(models.StorageFile, nil))

	assert.ErrorIs(t, repo.Delete(ctx, "nope"), models.ErrTransactionNotFound)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTransactionFileRepository_SaveFailureKeepsMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing-dir", "file.json")
	repo := NewTransactionFileRepository(path, models.NewFactory(models.StorageFile, nil))

	err := repo.Save(ctx, newTxn("a", time.Now().UTC(), 1, 0))
	require.Error(t, err)

	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)

	n, err := repo.Count(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTransactionFileRepository_DeleteFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	factory := models.NewFactory(models.StorageFile, nil)
	repo := NewTransactionFileRepository(path, factory)

	require.NoError(t, repo.Save(ctx, newTxn("a", time.Now().UTC(), 1, 0)))

	// Point the engine at a directory that does not exist so the rewrite fails
	repo.path = filepath.Join(dir, "missing-dir", "file.json")
	require.Error(t, repo.Delete(ctx, "a"))

	_, err := repo.GetByID(ctx, "a")
	assert.NoError(t, err)

	// The file still holds the record and a reload agrees with memory
	reloaded := NewTransactionFileRepository(path, factory)
	require.NoError(t, reloaded.Reload(ctx))
	_, err = reloaded.GetByID(ctx, "a")
	assert.NoError(t, err)
}

func TestTransactionFileRepository_UpdateFailureKeepsPreviousVersion(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	repo := NewTransactionFileRepository(path, models.NewFactory(models.StorageFile, nil))

	txn := newTxn("a", time.Now().UTC(), 1, 0)
	require.NoError(t, repo.Save(ctx, txn))

	repo.path = filepath.Join(dir, "missing-dir", "file.json")
	changed := txn.Clone()
	changed.Reviewed = 1
	require.Error(t, repo.Save(ctx, changed))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Reviewed)
}
