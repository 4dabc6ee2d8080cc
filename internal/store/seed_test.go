package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
- id: txn-1
  client_name: Priya Sharma
  client_phone: "+919876543210"
  merchant_name: Quick Mart
  amount: "1499.50"
  transaction_date: "2025-03-14"
  bank_name: HDFC
  card_number: "4111111111113456"
- client_name: Ravi Kumar
  client_phone: "+919812345678"
  merchant_name: Electronics Hub
  amount: "12999.99"
  transaction_date: "2025-04-02"
  bank_name: ICICI
  card_number: "5500000000001234"
`

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0644))

	txns, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "txn-1", txns[0].ID)
	assert.Equal(t, "Priya Sharma", txns[0].ClientName)
	assert.Equal(t, "1499.5", txns[0].Amount.String())

	// Missing ids get assigned.
	assert.NotEmpty(t, txns[1].ID)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	s := NewMemoryStore()
	txns := []Transaction{makeTestTransaction("txn-a"), makeTestTransaction("txn-b")}

	require.NoError(t, Seed(context.Background(), s, txns))

	stored, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
