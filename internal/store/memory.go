package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu   sync.Mutex
	txns map[string]Transaction
}

// NewMemoryStore creates a MemoryStore seeded with the given transactions.
func NewMemoryStore(txns ...Transaction) *MemoryStore {
	s := &MemoryStore{txns: make(map[string]Transaction, len(txns))}
	for _, txn := range txns {
		s.txns[txn.ID] = txn
	}
	return s
}

func (s *MemoryStore) List(ctx context.Context) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, 0, len(s.txns))
	for _, txn := range s.txns {
		out = append(out, txn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &txn, nil
}

func (s *MemoryStore) Put(ctx context.Context, txn *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns[txn.ID] = *txn
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
