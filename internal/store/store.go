// Package store holds transaction records behind a keyed repository
// interface. The call flow reads full records and writes full records back;
// there is no partial update and no locking beyond last-writer-wins.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a transaction id is absent from the store.
var ErrNotFound = errors.New("transaction not found")

// Store is the keyed transaction repository.
type Store interface {
	// List returns all transactions ordered by id.
	List(ctx context.Context) ([]Transaction, error)

	// Get returns the transaction with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Transaction, error)

	// Put writes the full record, replacing any existing record with the
	// same id.
	Put(ctx context.Context, txn *Transaction) error

	Close() error
}
