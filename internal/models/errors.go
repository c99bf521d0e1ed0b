package models

import "errors"

// ErrTransactionNotFound is returned by storage engines when no record has the requested id.
var ErrTransactionNotFound = errors.New("transaction not found")
