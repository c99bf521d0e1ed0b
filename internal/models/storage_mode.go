package models

import (
	"errors"
	"fmt"
	"strings"
)

// StorageMode selects the storage engine backing the records.
type StorageMode string

// Supported storage modes
const (
	StorageMemory StorageMode = "memory"
	StorageFile   StorageMode = "file"
	StorageDB     StorageMode = "db"
)

// ErrUnknownStorageMode is returned by ParseStorageMode for unsupported values.
var ErrUnknownStorageMode = errors.New("unknown storage mode")

// ParseStorageMode converts a configuration value into a StorageMode.
func ParseStorageMode(s string) (StorageMode, error) {
	switch mode := StorageMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case StorageMemory, StorageFile, StorageDB:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStorageMode, s)
}
