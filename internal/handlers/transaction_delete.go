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

//go:generate mockgen -source=transaction_delete.go -destination=transaction_delete_mock.go -package=handlers

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	Delete(ctx context.Context, id string) error
}

// NewDeleteTransactionHandler returns an HTTP handler that removes a transaction record.
// @Summary Delete transaction
// @Description Removes the transaction record with the given id
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} models.TransactionDeleteResponse
// @Failure 401 {object} models.TransactionErrorResponse "Unauthorized"
// @Failure 404 {object} models.TransactionErrorResponse "Transaction not found"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		actor, _ := middlewares.UserIDFromContext(ctx)

		if err := svc.Delete(ctx, id); err != nil {
			if errors.Is(err, models.ErrTransactionNotFound) {
				writeError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			logger.Log.Errorw("failed to delete transaction", "request_id", middlewares.RequestIDFromContext(r.Context()), "transaction_id", id, "actor", actor, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		logger.Log.Infow("transaction deleted", "transaction_id", id, "actor", actor)
		writeJSON(w, http.StatusOK, models.TransactionDeleteResponse{Message: "Transaction deleted successfully"})
	}
}

// RegisterDeleteTransactionHandler registers the delete route
func RegisterDeleteTransactionHandler(r chi.Router, h http.HandlerFunc) {
	r.Delete("/transactions/{id}", h)
}
