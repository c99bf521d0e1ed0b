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

//go:generate mockgen -source=transaction_create.go -destination=transaction_create_mock.go -package=handlers

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, args ...any) (*models.Transaction, error)
}

// NewCreateTransactionHandler returns an HTTP handler that stores a new transaction record.
// @Summary Create transaction
// @Description Creates a transaction record. Attributes missing from the body default to zero; id and timestamps are assigned by the server.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body object true "Attribute overrides: transaction_type, amount, d_p_c, c_p_c, user_id, reviewed, employer_id"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} models.TransactionErrorResponse "Invalid request body"
// @Failure 401 {object} models.TransactionErrorResponse "Unauthorized"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		attrs, err := decodeAttrs(r)
		if err != nil {
			logger.Log.Errorw("failed to decode transaction request", "request_id", middlewares.RequestIDFromContext(r.Context()), "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		actor, _ := middlewares.UserIDFromContext(ctx)

		txn, err := svc.Create(ctx, attrs)
		if err != nil {
			if errors.Is(err, models.ErrInvalidAttribute) {
				logger.Log.Warnw("invalid transaction attributes", "actor", actor, "error", err)
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.Log.Errorw("failed to create transaction", "request_id", middlewares.RequestIDFromContext(r.Context()), "actor", actor, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		logger.Log.Infow("transaction created", "transaction_id", txn.ID, "actor", actor)
		writeJSON(w, http.StatusCreated, models.TransactionResponse{Transaction: txn})
	}
}

// RegisterCreateTransactionHandler registers the create route
func RegisterCreateTransactionHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/transactions", h)
}
