package driven

import (
	"context"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// JournalStore persists the outcome of each processed document.
type JournalStore interface {
	// Record saves a journal entry.
	Record(ctx context.Context, entry *domain.JournalEntry) error

	// Get returns an entry by ID.
	Get(ctx context.Context, id string) (*domain.JournalEntry, error)

	// List returns the most recent entries first, at most limit of them.
	// A limit of zero or less returns all entries.
	List(ctx context.Context, limit int) ([]domain.JournalEntry, error)

	// ListByOutcome returns entries with the given outcome, most recent first.
	ListByOutcome(ctx context.Context, outcome domain.Outcome) ([]domain.JournalEntry, error)
}
