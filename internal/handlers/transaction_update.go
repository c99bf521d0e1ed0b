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

//go:generate mockgen -source=transaction_update.go -destination=transaction_update_mock.go -package=handlers

// TransactionUpdater defines the interface that the service must implement.
type TransactionUpdater interface {
	Update(ctx context.Context, id string, attrs models.Attrs) (*models.Transaction, error)
}

// NewUpdateTransactionHandler returns an HTTP handler that changes attributes of a stored transaction.
// @Summary Update transaction
// @Description Applies attribute overrides to an existing record and refreshes updated_at. id and timestamps in the body are ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction id"
// @Param request body object true "Attribute overrides"
// @Success 200 {object} models.TransactionResponse
// @Failure 400 {object} models.TransactionErrorResponse "Invalid request body"
// @Failure 401 {object} models.TransactionErrorResponse "Unauthorized"
// @Failure 404 {object} models.TransactionErrorResponse "Transaction not found"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions/{id} [put]
// @Security BearerAuth
func NewUpdateTransactionHandler(svc TransactionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		attrs, err := decodeAttrs(r)
		if err != nil {
			logger.Log.Errorw("failed to decode transaction request", "request_id", middlewares.RequestIDFromContext(r.Context()), "transaction_id", id, "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		actor, _ := middlewares.UserIDFromContext(ctx)

		txn, err := svc.Update(ctx, id, attrs)
		switch {
		case errors.Is(err, models.ErrTransactionNotFound):
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		case errors.Is(err, models.ErrInvalidAttribute):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			logger.Log.Errorw("failed to update transaction", "request_id", middlewares.RequestIDFromContext(r.Context()), "transaction_id", id, "actor", actor, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		logger.Log.Infow("transaction updated", "transaction_id", id, "actor", actor)
		writeJSON(w, http.StatusOK, models.TransactionResponse{Transaction: txn})
	}
}

// RegisterUpdateTransactionHandler registers the update route
func RegisterUpdateTransactionHandler(r chi.Router, h http.HandlerFunc) {
	r.Put("/transactions/{id}", h)
}
