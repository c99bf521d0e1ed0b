package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

var transactionRowColumns = []string{
	"id", "created_at", "updated_at", "transaction_type", "amount",
	"d_p_c", "c_p_c", "user_id", "reviewed", "employer_id",
}

func TestTransactionWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txn := &models.Transaction{
		BaseModel: models.BaseModel{ID: "a", CreatedAt: now, UpdatedAt: now},
		Amount:    decimal.NewFromInt(100),
		UserID:    7,
	}

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs("a", now, now, 0, sqlmock.AnyArg(), int64(0), int64(0), int64(7), 0, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), txn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_SaveError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	mock.ExpectExec("INSERT INTO transactions").WillReturnError(sql.ErrConnDone)

	err := repo.Save(context.Background(), &models.Transaction{BaseModel: models.BaseModel{ID: "a"}})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_SaveInContextTx(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewTransactionWriteRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	require.NoError(t, repo.Save(context.Background(), &models.Transaction{BaseModel: models.BaseModel{ID: "a"}}))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionWriteRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions").WithArgs("a").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions").WithArgs("a").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: models.ErrTransactionNotFound,
		},
		{
			name: "db error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM transactions").WithArgs("a").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := NewTransactionWriteRepository(db, nil).Delete(context.Background(), "a")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactionReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE id = \\$1").
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow("a", now, now, int64(2), "15.75", int64(11), int64(12), int64(7), int64(1), int64(3)))

	txn, err := repo.GetByID(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, "a", txn.ID)
	assert.Equal(t, now, txn.CreatedAt)
	assert.Equal(t, 2, txn.TransactionType)
	assert.Equal(t, "15.75", txn.Amount.String())
	assert.Equal(t, int64(11), txn.DPC)
	assert.Equal(t, int64(12), txn.CPC)
	assert.Equal(t, int64(7), txn.UserID)
	assert.Equal(t, 1, txn.Reviewed)
	assert.Equal(t, int64(3), txn.EmployerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(transactionRowColumns))

	txn, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, txn)
	assert.ErrorIs(t, err, models.ErrTransactionNotFound)
}

func TestTransactionReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user := int64(7)

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE (.+) ORDER BY created_at, id").
		WithArgs(int64(7), nil, nil).
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow("a", now, now, int64(0), "1", int64(0), int64(0), int64(7), int64(0), int64(0)).
			AddRow("b", now, now, int64(0), "2", int64(0), int64(0), int64(7), int64(1), int64(0)))

	txns, err := repo.List(context.Background(), models.TransactionFilter{UserID: &user})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "a", txns[0].ID)
	assert.Equal(t, "b", txns[1].ID)
	assert.Equal(t, 1, txns[1].Reviewed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionReadRepository_ListError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM transactions").WillReturnError(errors.New("boom"))

	txns, err := repo.List(context.Background(), models.TransactionFilter{})
	assert.Error(t, err)
	assert.Nil(t, txns)
}

func TestTransactionReadRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionReadRepository(db)

	reviewed := 1
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM transactions").
		WithArgs(nil, nil, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := repo.Count(context.Background(), models.TransactionFilter{Reviewed: &reviewed})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateTransactions_AmountKeepsScale(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`amount NUMERIC NOT NULL`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateTransactions(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NotContains(t, TransactionsSchema, "NUMERIC(")
}

func TestTransactionWriteRepository_SaveBindsFullPrecisionAmount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionWriteRepository(db, nil)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txn := &models.Transaction{
		BaseModel: models.BaseModel{ID: "a", CreatedAt: now, UpdatedAt: now},
		Amount:    decimal.RequireFromString("0.125"),
	}

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs("a", now, now, 0, "0.125", int64(0), int64(0), int64(0), 0, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), txn))
	assert.NoError(t, mock.ExpectationsWereMet())
}
