package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func testEntry(id string, outcome domain.Outcome, at time.Time) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:          id,
		DocumentID:  "doc-" + id,
		CrawlURL:    "https://example.com/" + id,
		Outcome:     outcome,
		Message:     "message " + id,
		ProcessedAt: at,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := setupTestStore(t)
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.JournalStore().Record(ctx, testEntry("a", domain.OutcomeProcessed, time.Now())))
	require.NoError(t, store.Close())

	// Migrations must not run twice
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	entry, err := reopened.JournalStore().Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "doc-a", entry.DocumentID)
}

func TestJournalStore_RecordAndGet(t *testing.T) {
	journal := setupTestStore(t).JournalStore()
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 30, 0, 123, time.UTC)

	require.NoError(t, journal.Record(ctx, testEntry("a", domain.OutcomeFailed, at)))

	entry, err := journal.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "doc-a", entry.DocumentID)
	assert.Equal(t, "https://example.com/a", entry.CrawlURL)
	assert.Equal(t, domain.OutcomeFailed, entry.Outcome)
	assert.Equal(t, "message a", entry.Message)
	assert.True(t, at.Equal(entry.ProcessedAt))
}

func TestJournalStore_RecordReplaces(t *testing.T) {
	journal := setupTestStore(t).JournalStore()
	ctx := context.Background()

	require.NoError(t, journal.Record(ctx, testEntry("a", domain.OutcomeFailed, time.Now())))
	require.NoError(t, journal.Record(ctx, testEntry("a", domain.OutcomeProcessed, time.Now())))

	entries, err := journal.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.OutcomeProcessed, entries[0].Outcome)
}

func TestJournalStore_RecordInvalid(t *testing.T) {
	journal := setupTestStore(t).JournalStore()
	ctx := context.Background()

	assert.ErrorIs(t, journal.Record(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, journal.Record(ctx, &domain.JournalEntry{ID: "x", Outcome: "odd"}), domain.ErrInvalidInput)
}

func TestJournalStore_GetMissing(t *testing.T) {
	_, err := setupTestStore(t).JournalStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournalStore_ListOrderAndLimit(t *testing.T) {
	journal := setupTestStore(t).JournalStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, journal.Record(ctx, testEntry("old", domain.OutcomeProcessed, base.Add(-2*time.Minute))))
	require.NoError(t, journal.Record(ctx, testEntry("new", domain.OutcomeExcluded, base)))
	require.NoError(t, journal.Record(ctx, testEntry("mid", domain.OutcomeFailed, base.Add(-time.Minute))))

	all, err := journal.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := journal.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestJournalStore_ListByOutcome(t *testing.T) {
	journal := setupTestStore(t).JournalStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, journal.Record(ctx, testEntry("a", domain.OutcomeExcluded, now)))
	require.NoError(t, journal.Record(ctx, testEntry("b", domain.OutcomeProcessed, now)))

	excluded, err := journal.ListByOutcome(ctx, domain.OutcomeExcluded)
	require.NoError(t, err)
	require.Len(t, excluded, 1)
	assert.Equal(t, "a", excluded[0].ID)

	failed, err := journal.ListByOutcome(ctx, domain.OutcomeFailed)
	require.NoError(t, err)
	assert.Empty(t, failed)
}
