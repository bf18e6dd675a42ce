package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finsignal/txengine/internal/models"
	"finsignal/txengine/internal/txerrors"

	"github.com/google/uuid"
)

// MemoryTransactionStore is an in-memory TransactionStore with the same
// atomicity guarantees the interface demands. It backs the CLI and the
// tests; production deployments plug a database adapter into the same
// interface.
type MemoryTransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]map[string]*models.CanonicalTransaction // householdID -> id -> tx
}

// NewMemoryTransactionStore creates an empty in-memory store.
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make(map[string]map[string]*models.CanonicalTransaction),
	}
}

// Insert persists a new transaction, assigning an ID and creation time when
// absent.
func (s *MemoryTransactionStore) Insert(ctx context.Context, tx *models.CanonicalTransaction) error {
	if tx.HouseholdID == "" {
		return &txerrors.StorageError{Op: "insert", Err: fmt.Errorf("missing household ID")}
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	household, ok := s.transactions[tx.HouseholdID]
	if !ok {
		household = make(map[string]*models.CanonicalTransaction)
		s.transactions[tx.HouseholdID] = household
	}
	if _, exists := household[tx.ID]; exists {
		return &txerrors.StorageError{
			Op:          "insert",
			HouseholdID: tx.HouseholdID,
			Err:         fmt.Errorf("duplicate transaction ID %s", tx.ID),
		}
	}

	stored := *tx
	household[tx.ID] = &stored
	return nil
}

// Get returns a copy of the transaction with the given ID.
func (s *MemoryTransactionStore) Get(ctx context.Context, householdID, id string) (*models.CanonicalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[householdID][id]
	if !ok {
		return nil, &txerrors.StorageError{
			Op:          "get",
			HouseholdID: householdID,
			Err:         fmt.Errorf("transaction %s not found", id),
		}
	}
	found := *tx
	return &found, nil
}

// FindByWindow returns copies of the household's transactions on the
// channel within [from, to].
func (s *MemoryTransactionStore) FindByWindow(ctx context.Context, householdID string, from, to time.Time, channel models.Channel) ([]*models.CanonicalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.CanonicalTransaction
	for _, tx := range s.transactions[householdID] {
		if tx.Channel != channel {
			continue
		}
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		found := *tx
		result = append(result, &found)
	}
	return result, nil
}

// LinkPair flags duplicateID as a duplicate of canonicalID in one atomic
// update. The write is conditioned on the current unlinked state of both
// records, so a candidate merged by a concurrent operation surfaces as
// ErrAlreadyLinked instead of corrupting the pair.
func (s *MemoryTransactionStore) LinkPair(ctx context.Context, householdID, canonicalID, duplicateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	household := s.transactions[householdID]
	canonical, okCanonical := household[canonicalID]
	duplicate, okDuplicate := household[duplicateID]
	if !okCanonical || !okDuplicate {
		return &txerrors.StorageError{
			Op:          "link_pair",
			HouseholdID: householdID,
			Err:         fmt.Errorf("pair %s/%s not found", canonicalID, duplicateID),
		}
	}

	// Re-merging the same pair is a no-op: no double-flagging, no
	// double-concatenation of notes.
	if duplicate.IsDuplicate && duplicate.DuplicateOf == canonicalID {
		return nil
	}
	if canonical.IsLinked() || duplicate.IsLinked() {
		return txerrors.ErrAlreadyLinked
	}

	duplicate.IsDuplicate = true
	duplicate.DuplicateOf = canonicalID
	duplicate.Status = models.StatusMerged
	if duplicate.Notes != "" {
		if canonical.Notes != "" {
			canonical.Notes = canonical.Notes + models.NoteSeparator + duplicate.Notes
		} else {
			canonical.Notes = duplicate.Notes
		}
	}
	return nil
}

// LinkReceipt attaches a receipt reference with compare-and-swap semantics
// on the receipt slot.
func (s *MemoryTransactionStore) LinkReceipt(ctx context.Context, householdID, txID, receiptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[householdID][txID]
	if !ok {
		return &txerrors.StorageError{
			Op:          "link_receipt",
			HouseholdID: householdID,
			Err:         fmt.Errorf("transaction %s not found", txID),
		}
	}
	if tx.ReceiptID == receiptID {
		return nil
	}
	if tx.ReceiptID != "" {
		return txerrors.ErrAlreadyLinked
	}
	tx.ReceiptID = receiptID
	return nil
}

// UpdateCategory sets the category and its provenance.
func (s *MemoryTransactionStore) UpdateCategory(ctx context.Context, householdID, id, category string, source models.CategorySource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[householdID][id]
	if !ok {
		return &txerrors.StorageError{
			Op:          "update_category",
			HouseholdID: householdID,
			Err:         fmt.Errorf("transaction %s not found", id),
		}
	}
	tx.Category = category
	tx.CategorySource = source
	return nil
}

// Confirm marks a transaction as verified by a human and leaves the
// provisional state.
func (s *MemoryTransactionStore) Confirm(ctx context.Context, householdID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[householdID][id]
	if !ok {
		return &txerrors.StorageError{
			Op:          "confirm",
			HouseholdID: householdID,
			Err:         fmt.Errorf("transaction %s not found", id),
		}
	}
	if tx.IsDuplicate {
		return &txerrors.StorageError{
			Op:          "confirm",
			HouseholdID: householdID,
			Err:         fmt.Errorf("transaction %s is a merged duplicate", id),
		}
	}
	tx.Verified = true
	tx.Status = models.StatusConfirmed
	return nil
}

// ListUncategorized returns up to limit transactions without a category.
// Merged duplicates are excluded; their canonical side carries the
// category.
func (s *MemoryTransactionStore) ListUncategorized(ctx context.Context, householdID string, limit int) ([]*models.CanonicalTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.CanonicalTransaction
	for _, tx := range s.transactions[householdID] {
		if tx.HasCategory() || tx.IsDuplicate {
			continue
		}
		found := *tx
		result = append(result, &found)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}
