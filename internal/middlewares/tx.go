package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
// The transaction commits when the handler responds with a status below 400
// and rolls back otherwise. The response is held until the outcome is known.
// Callbacks registered with AfterCommit run only once Commit succeeds.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.Beginx()
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				writeInternalError(w)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &afterCommitQueue{}
			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, afterCommitKey, hooks)
			r = r.WithContext(ctx)

			bw := &bufferedWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(bw, r)

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction",
					"request_id", RequestIDFromContext(ctx),
					"error", err,
				)
				writeInternalError(w)
				return
			}
			hooks.run()
			bw.flush()
		})
	}
}

// bufferedWriter delays the status line and body until flush.
type bufferedWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.statusCode = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.statusCode)
	_, _ = bw.ResponseWriter.Write(bw.body.Bytes())
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.TransactionErrorResponse{Error: "Internal server error"})
}

// afterCommitQueue holds side effects that must not outlive a rolled back transaction.
type afterCommitQueue struct {
	mu  sync.Mutex
	fns []func()
}

func (q *afterCommitQueue) add(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

func (q *afterCommitQueue) run() {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

type afterCommitContextKey struct{}

var afterCommitKey = afterCommitContextKey{}

// AfterCommit defers fn until the request transaction in ctx commits.
// Without a transaction in ctx, fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if q, ok := ctx.Value(afterCommitKey).(*afterCommitQueue); ok {
		q.add(fn)
		return
	}
	fn()
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
