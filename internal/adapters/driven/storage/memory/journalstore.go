// Package memory provides in-memory implementations of driven stores,
// for tests and for hosts that do not persist state.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
)

// Ensure JournalStore implements the interface.
var _ driven.JournalStore = (*JournalStore)(nil)

// JournalStore is an in-memory implementation of driven.JournalStore.
type JournalStore struct {
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry
}

// NewJournalStore creates a new in-memory journal store.
func NewJournalStore() *JournalStore {
	return &JournalStore{
		entries: make(map[string]domain.JournalEntry),
	}
}

// Record saves a journal entry, replacing any entry with the same ID.
func (s *JournalStore) Record(_ context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.ID == "" || !entry.Outcome.IsValid() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = *entry
	return nil
}

// Get returns an entry by ID.
func (s *JournalStore) Get(_ context.Context, id string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns up to limit entries, most recent first.
func (s *JournalStore) List(_ context.Context, limit int) ([]domain.JournalEntry, error) {
	result := s.sorted(func(domain.JournalEntry) bool { return true })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListByOutcome returns entries with the given outcome, most recent first.
func (s *JournalStore) ListByOutcome(_ context.Context, outcome domain.Outcome) ([]domain.JournalEntry, error) {
	return s.sorted(func(e domain.JournalEntry) bool { return e.Outcome == outcome }), nil
}

func (s *JournalStore) sorted(keep func(domain.JournalEntry) bool) []domain.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.JournalEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if keep(entry) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProcessedAt.Equal(result[j].ProcessedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].ProcessedAt.After(result[j].ProcessedAt)
	})
	return result
}
