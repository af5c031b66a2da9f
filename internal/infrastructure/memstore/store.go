// Package memstore provides an in-memory PantryRepository with the same
// conditional-decrement semantics as the sqlite store. Used for development
// mode and for exercising the no-overdraft invariant in tests without a
// database on disk.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepsense/backend/internal/domain"
)

// Store holds pantry items and audit records keyed by owner. A single mutex
// serializes deduction batches, which is exactly the isolation the ledger
// asks of its backing store.
type Store struct {
	mu      sync.Mutex
	items   map[string]map[string]domain.PantryItem // ownerID -> itemID -> item
	records map[string][]domain.DeductionRecord     // ownerID -> append-only audit rows
}

// New creates an empty store
func New() *Store {
	return &Store{
		items:   make(map[string]map[string]domain.PantryItem),
		records: make(map[string][]domain.DeductionRecord),
	}
}

// ItemsForOwner returns a snapshot of the owner's inventory. The snapshot is
// a copy: callers can match against it without holding any lock.
func (s *Store) ItemsForOwner(ctx context.Context, ownerID string) ([]domain.PantryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	snapshot := make([]domain.PantryItem, 0, len(owned))
	for _, item := range owned {
		snapshot = append(snapshot, item)
	}
	return snapshot, nil
}

// AddItem inserts or replaces a pantry item
func (s *Store) AddItem(ctx context.Context, item domain.PantryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.ID == "" || item.OwnerID == "" {
		return domain.ErrInvalidRequest
	}
	if item.Quantity.Amount.IsNegative() {
		return domain.ErrNegativeAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items[item.OwnerID] == nil {
		s.items[item.OwnerID] = make(map[string]domain.PantryItem)
	}
	s.items[item.OwnerID][item.ID] = item
	return nil
}

// Deduct applies a batch of conditional decrements under the store mutex.
// Partial-commit policy: each line's predicate is evaluated independently;
// passing lines commit, failing lines are reported as insufficient. A line
// referencing a missing item is also reported as insufficient rather than
// failing the batch.
func (s *Store) Deduct(ctx context.Context, ownerID string, lines []domain.DeductionLine, reason string) (domain.DeductionOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeductionOutcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owned := s.items[ownerID]
	now := time.Now().UTC()

	var outcome domain.DeductionOutcome
	for _, line := range lines {
		item, exists := owned[line.PantryItemID]
		if !exists || item.Quantity.Amount.LessThan(line.Amount) {
			outcome.Insufficient = append(outcome.Insufficient, line)
			continue
		}

		item.Quantity.Amount = item.Quantity.Amount.Sub(line.Amount)
		owned[line.PantryItemID] = item

		record := domain.DeductionRecord{
			ID:            uuid.NewString(),
			PantryItemID:  line.PantryItemID,
			OwnerID:       ownerID,
			AmountRemoved: line.Amount,
			Unit:          item.Quantity.Unit,
			Timestamp:     now,
			Reason:        reason,
		}
		s.records[ownerID] = append(s.records[ownerID], record)
		outcome.Succeeded = append(outcome.Succeeded, record)
	}

	return outcome, nil
}

// Records returns the owner's audit rows in insertion order
func (s *Store) Records(ctx context.Context, ownerID string) ([]domain.DeductionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.DeductionRecord(nil), s.records[ownerID]...), nil
}
