package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// ErrCacheMiss is returned when a transaction is not in the cache.
var ErrCacheMiss = errors.New("transaction not found in cache")

// TransactionCacheRepository caches transactions in Redis
type TransactionCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached records
}

// NewTransactionCacheRepository creates a new cache repository with the given TTL
func NewTransactionCacheRepository(client *redis.Client, expiration time.Duration) *TransactionCacheRepository {
	return &TransactionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("transaction:%s", id)
}

// Get fetches a cached transaction
func (r *TransactionCacheRepository) Get(ctx context.Context, id string) (*models.Transaction, error) {
	key := cacheKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Debugw("cache get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var txn models.Transaction
	if err := json.Unmarshal(val, &txn); err != nil {
		logger.Log.Warnw("cache entry corrupted", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Debugw("cache hit", "key", key)
	return &txn, nil
}

// Set caches a transaction with expiration
func (r *TransactionCacheRepository) Set(ctx context.Context, txn *models.Transaction) error {
	key := cacheKey(txn.ID)

	data, err := json.Marshal(txn)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Debugw("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}

// Delete evicts a cached transaction
func (r *TransactionCacheRepository) Delete(ctx context.Context, id string) error {
	key := cacheKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Debugw("cache delete", "key", key, "error", err)
	return err
}
