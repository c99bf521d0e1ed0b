package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// TransactionsSchema creates the transactions table.
const TransactionsSchema = `
	CREATE TABLE IF NOT EXISTS transactions (
		id VARCHAR(60) PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
		transaction_type INTEGER NOT NULL DEFAULT 0,
		amount NUMERIC NOT NULL DEFAULT 0,
		d_p_c BIGINT NOT NULL DEFAULT 0,
		c_p_c BIGINT NOT NULL DEFAULT 0,
		user_id BIGINT NOT NULL DEFAULT 0,
		reviewed INTEGER NOT NULL DEFAULT 0,
		employer_id BIGINT NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS transactions_user_id_idx ON transactions (user_id);
	CREATE INDEX IF NOT EXISTS transactions_employer_id_idx ON transactions (employer_id);
`

// MigrateTransactions applies TransactionsSchema.
func MigrateTransactions(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, TransactionsSchema)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(TransactionsSchema), " "),
		"error", err,
	)
	return err
}

// TransactionWriteRepository handles transaction write operations
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewTransactionWriteRepository creates a write repository. When txGetter returns
// a transaction for the request context, statements run inside it.
func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save performs an UPSERT keyed by id.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, created_at, updated_at, transaction_type, amount, d_p_c, c_p_c, user_id, reviewed, employer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET updated_at = EXCLUDED.updated_at,
		    transaction_type = EXCLUDED.transaction_type,
		    amount = EXCLUDED.amount,
		    d_p_c = EXCLUDED.d_p_c,
		    c_p_c = EXCLUDED.c_p_c,
		    user_id = EXCLUDED.user_id,
		    reviewed = EXCLUDED.reviewed,
		    employer_id = EXCLUDED.employer_id
	`
	args := []any{
		txn.ID, txn.CreatedAt, txn.UpdatedAt,
		txn.TransactionType, txn.Amount, txn.DPC, txn.CPC,
		txn.UserID, txn.Reviewed, txn.EmployerID,
	}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes the transaction with the given id.
func (r *TransactionWriteRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM transactions WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrTransactionNotFound
	}
	return nil
}

// TransactionReadRepository handles transaction read operations
type TransactionReadRepository struct {
	db *sqlx.DB
}

// NewTransactionReadRepository creates a read repository.
func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

const transactionColumns = `id, created_at, updated_at, transaction_type, amount, d_p_c, c_p_c, user_id, reviewed, employer_id`

const transactionFilter = `
		WHERE ($1::BIGINT IS NULL OR user_id = $1)
		  AND ($2::BIGINT IS NULL OR employer_id = $2)
		  AND ($3::INTEGER IS NULL OR reviewed = $3)
`

// GetByID retrieves a transaction by id.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, id)

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{id},
		"result", txn.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// List retrieves the transactions matching filter ordered by created_at, then id.
func (r *TransactionReadRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions` + transactionFilter + `ORDER BY created_at, id`
	args := filterArgs(filter)

	txns := []*models.Transaction{}
	err := r.db.SelectContext(ctx, &txns, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return txns, nil
}

// Count returns the number of transactions matching filter.
func (r *TransactionReadRepository) Count(ctx context.Context, filter models.TransactionFilter) (int, error) {
	query := `SELECT COUNT(*) FROM transactions` + transactionFilter
	args := filterArgs(filter)

	var n int
	err := r.db.GetContext(ctx, &n, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", n,
		"error", err,
	)

	return n, err
}

func filterArgs(f models.TransactionFilter) []any {
	var userID, employerID, reviewed any
	if f.UserID != nil {
		userID = *f.UserID
	}
	if f.EmployerID != nil {
		employerID = *f.EmployerID
	}
	if f.Reviewed != nil {
		reviewed = *f.Reviewed
	}
	return []any{userID, employerID, reviewed}
}
