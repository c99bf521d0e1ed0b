package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedInitializer(now time.Time, id string) *DefaultInitializer {
	return &DefaultInitializer{
		Now:   func() time.Time { return now },
		NewID: func() string { return id },
	}
}

func TestDefaultInitializer_AssignsIdentity(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	initializer := fixedInitializer(now, "fixed-id")

	var txn Transaction
	require.NoError(t, initializer.Init(&txn))

	assert.Equal(t, "fixed-id", txn.ID)
	assert.Equal(t, now, txn.CreatedAt)
	assert.Equal(t, now, txn.UpdatedAt)
}

func TestDefaultInitializer_UniqueIDs(t *testing.T) {
	initializer := NewDefaultInitializer()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		var txn Transaction
		require.NoError(t, initializer.Init(&txn))
		_, dup := seen[txn.ID]
		assert.False(t, dup)
		seen[txn.ID] = struct{}{}
	}
}

func TestDefaultInitializer_HydratesFromDictionary(t *testing.T) {
	initializer := fixedInitializer(time.Now(), "generated")

	var txn Transaction
	err := initializer.Init(&txn, map[string]any{
		ClassKey:     TransactionClass,
		"id":         "stored-id",
		"created_at": "2023-07-01T08:00:00.000001",
		"updated_at": "2023-07-02T09:00:00.000000",
		"amount":     "99.99",
		"reviewed":   float64(1),
	})
	require.NoError(t, err)

	assert.Equal(t, "stored-id", txn.ID)
	assert.Equal(t, time.Date(2023, 7, 1, 8, 0, 0, 1000, time.UTC), txn.CreatedAt)
	assert.Equal(t, time.Date(2023, 7, 2, 9, 0, 0, 0, time.UTC), txn.UpdatedAt)
	assert.True(t, decimal.RequireFromString("99.99").Equal(txn.Amount))
	assert.Equal(t, 1, txn.Reviewed)
}

func TestDefaultInitializer_IgnoresPositionalArgs(t *testing.T) {
	initializer := fixedInitializer(time.Now(), "id")

	var txn Transaction
	require.NoError(t, initializer.Init(&txn, "ignored", 17, nil))
	assert.Equal(t, "id", txn.ID)
	assert.True(t, txn.Amount.IsZero())
}

func TestHydrate(t *testing.T) {
	tests := []struct {
		name    string
		attrs   map[string]any
		check   func(t *testing.T, txn *Transaction)
		wantErr bool
	}{
		{
			name:  "json number amount",
			attrs: map[string]any{"amount": json.Number("10.25")},
			check: func(t *testing.T, txn *Transaction) {
				assert.Equal(t, "10.25", txn.Amount.String())
			},
		},
		{
			name:  "float amount",
			attrs: map[string]any{"amount": 3.5},
			check: func(t *testing.T, txn *Transaction) {
				assert.Equal(t, "3.5", txn.Amount.String())
			},
		},
		{
			name:  "rfc3339 timestamp",
			attrs: map[string]any{"updated_at": "2024-02-03T04:05:06Z"},
			check: func(t *testing.T, txn *Transaction) {
				assert.Equal(t, time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC), txn.UpdatedAt.UTC())
			},
		},
		{
			name:  "unknown keys skipped",
			attrs: map[string]any{"name": "pool", "user_id": 8},
			check: func(t *testing.T, txn *Transaction) {
				assert.Equal(t, int64(8), txn.UserID)
			},
		},
		{
			name:    "bad amount",
			attrs:   map[string]any{"amount": "lots"},
			wantErr: true,
		},
		{
			name:    "bad timestamp",
			attrs:   map[string]any{"created_at": "yesterday"},
			wantErr: true,
		},
		{
			name:    "bad integer",
			attrs:   map[string]any{"reviewed": "yes please"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txn Transaction
			err := Hydrate(&txn, tt.attrs)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAttribute)
				return
			}
			require.NoError(t, err)
			tt.check(t, &txn)
		})
	}
}

func TestHydrate_DoesNotModifyInput(t *testing.T) {
	attrs := Attrs{ClassKey: TransactionClass, "amount": 1}

	var txn Transaction
	require.NoError(t, Hydrate(&txn, attrs))
	assert.Equal(t, Attrs{ClassKey: TransactionClass, "amount": 1}, attrs)
}

func TestBaseModel_Touch(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	b := BaseModel{ID: "x", CreatedAt: created, UpdatedAt: created}
	b.Touch(later)

	assert.Equal(t, created, b.CreatedAt)
	assert.Equal(t, later, b.UpdatedAt)
}
