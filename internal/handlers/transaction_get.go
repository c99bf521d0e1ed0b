package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/middlewares"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

//go:generate mockgen -source=transaction_get.go -destination=transaction_get_mock.go -package=handlers

// TransactionGetter defines the interface that the service must implement.
type TransactionGetter interface {
	Get(ctx context.Context, id string) (*models.Transaction, error)
}

// NewGetTransactionHandler returns an HTTP handler that fetches one transaction record.
// @Summary Get transaction
// @Description Returns the transaction record with the given id
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} models.TransactionErrorResponse "Transaction not found"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions/{id} [get]
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		txn, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrTransactionNotFound) {
				writeError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			logger.Log.Errorw("failed to get transaction", "request_id", middlewares.RequestIDFromContext(r.Context()), "transaction_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, models.TransactionResponse{Transaction: txn})
	}
}

// RegisterGetTransactionHandler registers the get route
func RegisterGetTransactionHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/transactions/{id}", h)
}
