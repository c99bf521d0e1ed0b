package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sbilibin2017/gw-transaction-records/internal/logger"
	"github.com/sbilibin2017/gw-transaction-records/internal/models"
)

// EntityBuilder rebuilds entities from their dictionary form.
type EntityBuilder interface {
	New(className string, args ...any) (models.Entity, error)
}

// TransactionFileRepository is the memory repository persisted to a JSON file.
// The file maps "<class>.<id>" to the dictionary form of each object and is
// rewritten in full after every change.
type TransactionFileRepository struct {
	*TransactionMemoryRepository

	path    string
	builder EntityBuilder
	writeMu sync.Mutex
}

// NewTransactionFileRepository creates a repository backed by the file at path.
// Call Reload to load previously saved objects.
func NewTransactionFileRepository(path string, builder EntityBuilder) *TransactionFileRepository {
	return &TransactionFileRepository{
		TransactionMemoryRepository: NewTransactionMemoryRepository(),
		path:                        path,
		builder:                     builder,
	}
}

// Save writes the file with the transaction included, then stores it in memory.
// When the file cannot be written nothing changes.
func (r *TransactionFileRepository) Save(ctx context.Context, txn *models.Transaction) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snap := r.snapshot()
	snap[objectKey(txn.ID)] = txn.ToMap()
	if err := r.flush(snap); err != nil {
		return err
	}
	return r.TransactionMemoryRepository.Save(ctx, txn)
}

// Delete writes the file without the transaction, then removes it from memory.
// When the file cannot be written nothing changes.
func (r *TransactionFileRepository) Delete(ctx context.Context, id string) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	snap := r.snapshot()
	key := objectKey(id)
	if _, ok := snap[key]; !ok {
		return models.ErrTransactionNotFound
	}
	delete(snap, key)
	if err := r.flush(snap); err != nil {
		return err
	}
	return r.TransactionMemoryRepository.Delete(ctx, id)
}

// Reload replaces the in-memory objects with the file contents.
// A missing file leaves the repository empty.
func (r *TransactionFileRepository) Reload(ctx context.Context) error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Log.Infow("storage file not found, starting empty", "path", r.path)
		return nil
	}
	if err != nil {
		return err
	}

	var raw map[string]map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", r.path, err)
	}

	objects := make(map[string]*models.Transaction, len(raw))
	for key, attrs := range raw {
		className, _ := attrs[models.ClassKey].(string)
		entity, err := r.builder.New(className, models.Attrs(attrs))
		if err != nil {
			return fmt.Errorf("load %s: %w", key, err)
		}
		txn, ok := entity.(*models.Transaction)
		if !ok {
			return fmt.Errorf("load %s: %w: %q", key, models.ErrUnknownClass, className)
		}
		objects[objectKey(txn.ID)] = txn
	}
	r.replace(objects)

	logger.Log.Infow("storage file loaded", "path", r.path, "objects", len(objects))
	return nil
}

// flush atomically replaces the file with snap. Callers hold writeMu.
func (r *TransactionFileRepository) flush(snap map[string]map[string]any) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	err = os.Rename(tmp.Name(), r.path)
	logger.Log.Infow("storage file written",
		"path", r.path,
		"bytes", len(data),
		"error", err,
	)
	return err
}
