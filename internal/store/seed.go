package store

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadSeedFile reads a YAML list of transactions. Records without an id are
// assigned one.
func LoadSeedFile(path string) ([]Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var txns []Transaction
	if err := yaml.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i := range txns {
		if txns[i].ID == "" {
			txns[i].ID = uuid.NewString()
		}
	}

	return txns, nil
}

// Seed writes the given transactions into the store.
func Seed(ctx context.Context, s Store, txns []Transaction) error {
	for i := range txns {
		if err := s.Put(ctx, &txns[i]); err != nil {
			return fmt.Errorf("seed %s: %w", txns[i].ID, err)
		}
	}
	return nil
}
