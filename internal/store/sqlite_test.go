package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err, "failed to create store")

	t.Cleanup(func() { s.Close() })
	return s
}

func makeTestTransaction(id string) Transaction {
	return Transaction{
		ID:              id,
		ClientName:      "Ravi Kumar",
		ClientPhone:     "+919812345678",
		MerchantName:    "Electronics Hub",
		Amount:          decimal.RequireFromString("12999.99"),
		TransactionDate: "2025-04-02",
		BankName:        "ICICI",
		CardNumber:      "5500000000001234",
	}
}

func TestSQLiteStore_PutGetRoundtrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	txn := makeTestTransaction("txn-a")
	require.NoError(t, s.Put(ctx, &txn))

	got, err := s.Get(ctx, "txn-a")
	require.NoError(t, err)
	assert.Equal(t, txn.ClientName, got.ClientName)
	assert.Equal(t, txn.ClientPhone, got.ClientPhone)
	assert.True(t, txn.Amount.Equal(got.Amount), "amount %s != %s", txn.Amount, got.Amount)
	assert.Equal(t, "1234", got.CardLast4())
	assert.Empty(t, got.Action)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_PutReplacesFullRecord(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	txn := makeTestTransaction("txn-a")
	require.NoError(t, s.Put(ctx, &txn))

	txn.Action = "Resolved"
	txn.ClientPhone = "+919900000000"
	require.NoError(t, s.Put(ctx, &txn))

	got, err := s.Get(ctx, "txn-a")
	require.NoError(t, err)
	assert.Equal(t, "Resolved", got.Action)
	assert.Equal(t, "+919900000000", got.ClientPhone)

	txns, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestSQLiteStore_ListOrderedByID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"txn-c", "txn-a", "txn-b"} {
		txn := makeTestTransaction(id)
		require.NoError(t, s.Put(ctx, &txn))
	}

	txns, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "txn-a", txns[0].ID)
	assert.Equal(t, "txn-b", txns[1].ID)
	assert.Equal(t, "txn-c", txns[2].ID)
}
