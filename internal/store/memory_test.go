package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore(makeTestTransaction("txn-a"))
	ctx := context.Background()

	got, err := s.Get(ctx, "txn-a")
	require.NoError(t, err)

	// Mutating the returned record must not write through.
	got.Action = "Resolved"

	again, err := s.Get(ctx, "txn-a")
	require.NoError(t, err)
	assert.Empty(t, again.Action)
}

func TestMemoryStore_PutAndList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "txn-a")
	assert.ErrorIs(t, err, ErrNotFound)

	txn := makeTestTransaction("txn-a")
	require.NoError(t, s.Put(ctx, &txn))

	txns, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "txn-a", txns[0].ID)
}
