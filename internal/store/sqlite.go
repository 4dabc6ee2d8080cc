package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// SQLiteStore is the durable transaction store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the database at dbPath and
// runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			client_name TEXT NOT NULL,
			client_phone TEXT NOT NULL,
			merchant_name TEXT NOT NULL,
			amount TEXT NOT NULL,
			transaction_date TEXT NOT NULL,
			bank_name TEXT NOT NULL,
			card_number TEXT NOT NULL,
			action TEXT NOT NULL DEFAULT ''
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns all transactions ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, client_name, client_phone, merchant_name, amount,
		       transaction_date, bank_name, card_number, action
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}

	return txns, rows.Err()
}

// Get returns the transaction with the given id, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, client_name, client_phone, merchant_name, amount,
		       transaction_date, bank_name, card_number, action
		FROM transactions WHERE id = ?
	`, id)

	txn, err := scanTransaction(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	return txn, nil
}

// Put writes the full record, replacing any existing record with the same id.
func (s *SQLiteStore) Put(ctx context.Context, txn *Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transactions
			(id, client_name, client_phone, merchant_name, amount,
			 transaction_date, bank_name, card_number, action)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, txn.ID, txn.ClientName, txn.ClientPhone, txn.MerchantName,
		txn.Amount.String(), txn.TransactionDate, txn.BankName,
		txn.CardNumber, txn.Action)

	return err
}

func scanTransaction(scan func(dest ...any) error) (*Transaction, error) {
	var txn Transaction
	var amount string

	err := scan(&txn.ID, &txn.ClientName, &txn.ClientPhone, &txn.MerchantName,
		&amount, &txn.TransactionDate, &txn.BankName, &txn.CardNumber,
		&txn.Action)
	if err != nil {
		return nil, err
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount for %s: %w", txn.ID, err)
	}

	return &txn, nil
}
