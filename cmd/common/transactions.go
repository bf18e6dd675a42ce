// Package common holds helpers shared by the CLI commands.
package common

import (
	"context"
	"fmt"
	"os"

	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/store"

	"gopkg.in/yaml.v3"
)

// LoadTransactions reads a YAML list of transactions from a file and
// inserts them into a fresh in-memory store.
func LoadTransactions(path, householdID string) (*store.MemoryTransactionStore, []models.CanonicalTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read transactions file: %w", err)
	}

	var transactions []models.CanonicalTransaction
	if err := yaml.Unmarshal(data, &transactions); err != nil {
		return nil, nil, fmt.Errorf("could not parse transactions file: %w", err)
	}

	txStore := store.NewMemoryTransactionStore()
	ctx := context.Background()
	for i := range transactions {
		if transactions[i].HouseholdID == "" {
			transactions[i].HouseholdID = householdID
		}
		if err := txStore.Insert(ctx, &transactions[i]); err != nil {
			return nil, nil, err
		}
	}
	return txStore, transactions, nil
}

// WriteYAML marshals v to stdout as YAML.
func WriteYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
