package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=transaction.go -destination=transaction_mock.go -package=services

// TransactionBuilder constructs new transaction records.
type TransactionBuilder interface {
	NewTransaction(args ...any) (*models.Transaction, error) // Forwards args to the base initializer
}

// TransactionWriter defines methods for persisting transactions.
type TransactionWriter interface {
	Save(ctx context.Context, txn *models.Transaction) error // Inserts or replaces a transaction
	Delete(ctx context.Context, id string) error             // Removes a transaction
}

// TransactionReader defines methods for reading transactions.
type TransactionReader interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)                      // Returns one transaction
	List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) // Returns matching transactions
	Count(ctx context.Context, filter models.TransactionFilter) (int, error)                  // Counts matching transactions
}

// TransactionCache caches transactions by id.
type TransactionCache interface {
	Get(ctx context.Context, id string) (*models.Transaction, error) // Returns a cached transaction
	Set(ctx context.Context, txn *models.Transaction) error          // Caches a transaction
	Delete(ctx context.Context, id string) error                     // Evicts a transaction
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// reserved attributes are owned by the base model and never changed by Update.
var reserved = map[string]struct{}{
	"id":            {},
	"created_at":    {},
	"updated_at":    {},
	models.ClassKey: {},
}

// TransactionService manages the lifecycle of transaction records and publishes changes to Kafka.
type TransactionService struct {
	builder     TransactionBuilder
	reader      TransactionReader
	writer      TransactionWriter
	cache       TransactionCache
	kafkaWriter KafkaWriter
	afterCommit func(ctx context.Context, fn func())
	now         func() time.Time
}

// Option configures a TransactionService.
type Option func(*TransactionService)

// WithAfterCommit sets how cache updates and Kafka events are scheduled
// relative to the storage transaction carried by ctx. By default they run
// right after the write returns.
func WithAfterCommit(afterCommit func(ctx context.Context, fn func())) Option {
	return func(s *TransactionService) {
		s.afterCommit = afterCommit
	}
}

// NewTransactionService creates a new TransactionService. cache and kafkaWriter may be nil.
func NewTransactionService(
	builder TransactionBuilder,
	reader TransactionReader,
	writer TransactionWriter,
	cache TransactionCache,
	kafkaWriter KafkaWriter,
	opts ...Option,
) *TransactionService {
	s := &TransactionService{
		builder:     builder,
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		afterCommit: func(_ context.Context, fn func()) { fn() },
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publish publishes a change event to Kafka.
func (s *TransactionService) publish(ctx context.Context, operation, id string, txn *models.Transaction) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", id)
		return
	}

	event := models.TransactionEvent{
		EventID:     uuid.NewString(),
		Operation:   operation,
		Timestamp:   s.now().Unix(),
		RecordID:    id,
		Transaction: txn,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction event", "transaction_id", id, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(id),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction event", "transaction_id", id, "operation", operation, "error", err)
	} else {
		logger.Log.Infow("Transaction event published", "transaction_id", id, "operation", operation)
	}
}

func (s *TransactionService) cacheSet(ctx context.Context, txn *models.Transaction) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, txn); err != nil {
		logger.Log.Warnw("failed to cache transaction", "transaction_id", txn.ID, "error", err)
	}
}

func (s *TransactionService) cacheDelete(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Log.Warnw("failed to evict transaction", "transaction_id", id, "error", err)
	}
}

// Create builds a transaction from args, stores it and publishes the change.
func (s *TransactionService) Create(ctx context.Context, args ...any) (*models.Transaction, error) {
	txn, err := s.builder.NewTransaction(args...)
	if err != nil {
		logger.Log.Errorw("failed to build transaction", "error", err)
		return nil, err
	}

	if err := s.writer.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save transaction", "transaction_id", txn.ID, "error", err)
		return nil, err
	}

	s.afterCommit(ctx, func() {
		s.cacheSet(ctx, txn)
		s.publish(ctx, models.OperationCreated, txn.ID, txn)
	})
	return txn, nil
}

// Get returns the transaction with the given id, consulting the cache first.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	if s.cache != nil {
		if txn, err := s.cache.Get(ctx, id); err == nil {
			return txn, nil
		}
	}

	txn, err := s.reader.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrTransactionNotFound) {
			logger.Log.Errorw("failed to get transaction", "transaction_id", id, "error", err)
		}
		return nil, err
	}

	s.cacheSet(ctx, txn)
	return txn, nil
}

// List returns the transactions matching filter.
func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	txns, err := s.reader.List(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "error", err)
		return nil, err
	}
	return txns, nil
}

// Count returns the number of transactions matching filter.
func (s *TransactionService) Count(ctx context.Context, filter models.TransactionFilter) (int, error) {
	n, err := s.reader.Count(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to count transactions", "error", err)
		return 0, err
	}
	return n, nil
}

// Update applies attrs to the stored transaction, bumps updated_at and saves it.
// id, created_at, updated_at and the class key in attrs are ignored.
func (s *TransactionService) Update(ctx context.Context, id string, attrs models.Attrs) (*models.Transaction, error) {
	txn, err := s.reader.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrTransactionNotFound) {
			logger.Log.Errorw("failed to load transaction for update", "transaction_id", id, "error", err)
		}
		return nil, err
	}

	changes := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if _, skip := reserved[k]; !skip {
			changes[k] = v
		}
	}
	if err := models.Hydrate(txn, changes); err != nil {
		logger.Log.Warnw("invalid transaction update", "transaction_id", id, "error", err)
		return nil, err
	}
	txn.Touch(s.now())

	if err := s.writer.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save transaction", "transaction_id", id, "error", err)
		return nil, err
	}

	s.afterCommit(ctx, func() {
		s.cacheSet(ctx, txn)
		s.publish(ctx, models.OperationUpdated, txn.ID, txn)
	})
	return txn, nil
}

// Delete removes the transaction with the given id.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		if !errors.Is(err, models.ErrTransactionNotFound) {
			logger.Log.Errorw("failed to delete transaction", "transaction_id", id, "error", err)
		}
		return err
	}

	s.afterCommit(ctx, func() {
		s.cacheDelete(ctx, id)
		s.publish(ctx, models.OperationDeleted, id, nil)
	})
	return nil
}
