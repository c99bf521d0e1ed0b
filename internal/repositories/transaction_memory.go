package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// TransactionMemoryRepository keeps transactions in process memory.
// It is safe for concurrent use; stored and returned records are copies.
type TransactionMemoryRepository struct {
	mu      sync.RWMutex
	objects map[string]*models.Transaction // keyed by <class>.<id>
}

// NewTransactionMemoryRepository creates an empty repository.
func NewTransactionMemoryRepository() *TransactionMemoryRepository {
	return &TransactionMemoryRepository{
		objects: make(map[string]*models.Transaction),
	}
}

func objectKey(id string) string {
	return models.TransactionClass + "." + id
}

// Save inserts or replaces the transaction with the same id.
func (r *TransactionMemoryRepository) Save(ctx context.Context, txn *models.Transaction) error {
	r.mu.Lock()
	r.objects[objectKey(txn.ID)] = txn.Clone()
	r.mu.Unlock()

	logger.Log.Debugw("memory save", "key", objectKey(txn.ID))
	return nil
}

// Delete removes the transaction with the given id.
func (r *TransactionMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := objectKey(id)
	if _, ok := r.objects[key]; !ok {
		return models.ErrTransactionNotFound
	}
	delete(r.objects, key)

	logger.Log.Debugw("memory delete", "key", key)
	return nil
}

// GetByID returns the transaction with the given id.
func (r *TransactionMemoryRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	txn, ok := r.objects[objectKey(id)]
	if !ok {
		return nil, models.ErrTransactionNotFound
	}
	return txn.Clone(), nil
}

// List returns the transactions matching filter ordered by created_at, then id.
func (r *TransactionMemoryRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	r.mu.RLock()
	result := make([]*models.Transaction, 0, len(r.objects))
	for _, txn := range r.objects {
		if filter.Match(txn) {
			result = append(result, txn.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Count returns the number of transactions matching filter.
func (r *TransactionMemoryRepository) Count(ctx context.Context, filter models.TransactionFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, txn := range r.objects {
		if filter.Match(txn) {
			n++
		}
	}
	return n, nil
}

// snapshot returns the dictionary form of every stored object.
func (r *TransactionMemoryRepository) snapshot() map[string]map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]map[string]any, len(r.objects))
	for key, txn := range r.objects {
		out[key] = txn.ToMap()
	}
	return out
}

// replace swaps the stored objects for the given set.
func (r *TransactionMemoryRepository) replace(objects map[string]*models.Transaction) {
	r.mu.Lock()
	r.objects = objects
	r.mu.Unlock()
}
