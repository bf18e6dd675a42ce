// Package store defines the persistence collaborators the engine depends
// on and provides the in-memory and YAML-backed implementations. Household
// identity is always supplied by the caller; the engine never resolves it.
package store

import (
	"context"
	"time"

	"finsignal/txengine/internal/models"
)

// TransactionStore is the persistent transaction collaborator. Every
// operation is scoped to one household.
type TransactionStore interface {
	// Insert persists a new transaction.
	Insert(ctx context.Context, tx *models.CanonicalTransaction) error

	// Get returns a transaction by ID.
	Get(ctx context.Context, householdID, id string) (*models.CanonicalTransaction, error)

	// FindByWindow returns the household's transactions on the given
	// channel whose date falls inside [from, to].
	FindByWindow(ctx context.Context, householdID string, from, to time.Time, channel models.Channel) ([]*models.CanonicalTransaction, error)

	// LinkPair atomically flags duplicateID as a duplicate of canonicalID
	// and concatenates notes onto the canonical record. The write is
	// conditioned on both records being unlinked: a pair already linked to
	// each other is a no-op, a record linked elsewhere returns
	// txerrors.ErrAlreadyLinked.
	LinkPair(ctx context.Context, householdID, canonicalID, duplicateID string) error

	// LinkReceipt attaches a receipt reference to a transaction, with the
	// same compare-and-swap semantics as LinkPair.
	LinkReceipt(ctx context.Context, householdID, txID, receiptID string) error

	// UpdateCategory sets the category and its provenance.
	UpdateCategory(ctx context.Context, householdID, id, category string, source models.CategorySource) error

	// Confirm marks a transaction as human-verified and moves it to the
	// confirmed status. Merged duplicates cannot be confirmed; their
	// canonical side carries the confirmation.
	Confirm(ctx context.Context, householdID, id string) error

	// ListUncategorized returns up to limit transactions without a
	// category, for batch sweeps. A limit of zero or less means no limit.
	ListUncategorized(ctx context.Context, householdID string, limit int) ([]*models.CanonicalTransaction, error)
}

// MerchantMemory is the household-scoped merchant-to-category prior.
// Entries exist only where a human confirmed a category with an explicit
// remember instruction.
type MerchantMemory interface {
	// Upsert records a confirmed merchant-to-category mapping.
	Upsert(householdID, normalizedMerchant, category string) error

	// Lookup returns the remembered category for a merchant. Exact lookup
	// first, substring lookup as the secondary path.
	Lookup(householdID, normalizedMerchant string) (string, bool, error)
}
