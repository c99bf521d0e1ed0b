package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/middlewares"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

//go:generate mockgen -source=transaction_list.go -destination=transaction_list_mock.go -package=handlers

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error)
}

// TransactionCounter defines the interface that the service must implement.
type TransactionCounter interface {
	Count(ctx context.Context, filter models.TransactionFilter) (int, error)
}

// NewListTransactionsHandler returns an HTTP handler that lists transaction records.
// @Summary List transactions
// @Description Returns transaction records ordered by creation time, optionally filtered
// @Tags transactions
// @Produce json
// @Param user_id query int false "Filter by user id"
// @Param employer_id query int false "Filter by employer id"
// @Param reviewed query int false "Filter by review flag"
// @Success 200 {object} models.TransactionListResponse
// @Failure 400 {object} models.TransactionErrorResponse "Invalid filter"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		txns, err := svc.List(r.Context(), filter)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "request_id", middlewares.RequestIDFromContext(r.Context()), "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if txns == nil {
			txns = []*models.Transaction{}
		}

		writeJSON(w, http.StatusOK, models.TransactionListResponse{
			Transactions: txns,
			Count:        len(txns),
		})
	}
}

// NewCountTransactionsHandler returns an HTTP handler that counts transaction records.
// @Summary Count transactions
// @Description Returns the number of transaction records, optionally filtered
// @Tags transactions
// @Produce json
// @Param user_id query int false "Filter by user id"
// @Param employer_id query int false "Filter by employer id"
// @Param reviewed query int false "Filter by review flag"
// @Success 200 {object} models.TransactionCountResponse
// @Failure 400 {object} models.TransactionErrorResponse "Invalid filter"
// @Failure 500 {object} models.TransactionErrorResponse "Internal server error"
// @Router /transactions/count [get]
func NewCountTransactionsHandler(svc TransactionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		n, err := svc.Count(r.Context(), filter)
		if err != nil {
			logger.Log.Errorw("failed to count transactions", "request_id", middlewares.RequestIDFromContext(r.Context()), "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, models.TransactionCountResponse{Count: n})
	}
}

// RegisterListTransactionsHandler registers the list route
func RegisterListTransactionsHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/transactions", h)
}

// RegisterCountTransactionsHandler registers the count route
func RegisterCountTransactionsHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/transactions/count", h)
}
