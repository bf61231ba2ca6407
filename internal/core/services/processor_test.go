package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// mockPlugin is a test implementation of driving.CrawlerPlugin.
type mockPlugin struct {
	update func(doc *domain.Document) error
}

func (m *mockPlugin) Init(domain.PluginConfiguration) error { return nil }
func (m *mockPlugin) Term() error                          { return nil }

func (m *mockPlugin) UpdateDocument(_ context.Context, doc *domain.Document) error {
	if m.update == nil {
		return nil
	}
	return m.update(doc)
}

// failingJournal is a JournalStore whose Record always fails.
type failingJournal struct {
	*memory.JournalStore
}

func (failingJournal) Record(context.Context, *domain.JournalEntry) error {
	return errors.New("disk full")
}

func fixedClock(processor *DocumentProcessor, at time.Time) {
	processor.now = func() time.Time { return at }
}

func TestDocumentProcessor_Processed(t *testing.T) {
	journal := memory.NewJournalStore()
	processor := NewDocumentProcessor(&mockPlugin{}, journal)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fixedClock(processor, at)
	ctx := context.Background()

	entry, err := processor.Process(ctx, &domain.Document{ID: "doc-1", CrawlURL: "https://example.com/a"})
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "doc-1", entry.DocumentID)
	assert.Equal(t, "https://example.com/a", entry.CrawlURL)
	assert.Equal(t, domain.OutcomeProcessed, entry.Outcome)
	assert.Empty(t, entry.Message)
	assert.Equal(t, at, entry.ProcessedAt)

	stored, err := journal.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.DocumentID, stored.DocumentID)
}

func TestDocumentProcessor_AssignsDocumentID(t *testing.T) {
	processor := NewDocumentProcessor(&mockPlugin{}, nil)
	doc := &domain.Document{CrawlURL: "https://example.com/a"}

	entry, err := processor.Process(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, doc.ID, entry.DocumentID)
}

func TestDocumentProcessor_Excluded(t *testing.T) {
	plugin := &mockPlugin{update: func(doc *domain.Document) error {
		doc.Exclude = true
		doc.AddNotice("excluded")
		return nil
	}}
	journal := memory.NewJournalStore()
	processor := NewDocumentProcessor(plugin, journal)

	entry, err := processor.Process(context.Background(), &domain.Document{ID: "doc-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeExcluded, entry.Outcome)
	assert.Equal(t, "excluded", entry.Message)

	excluded, err := journal.ListByOutcome(context.Background(), domain.OutcomeExcluded)
	require.NoError(t, err)
	assert.Len(t, excluded, 1)
}

func TestDocumentProcessor_Failed(t *testing.T) {
	updateErr := domain.NewUpdateError("https://example.com/a", errors.New("broken pipe"))
	plugin := &mockPlugin{update: func(*domain.Document) error { return updateErr }}
	journal := memory.NewJournalStore()
	processor := NewDocumentProcessor(plugin, journal)

	entry, err := processor.Process(context.Background(), &domain.Document{ID: "doc-1", CrawlURL: "https://example.com/a"})
	require.ErrorIs(t, err, domain.ErrDocumentUpdate)
	require.NotNil(t, entry)
	assert.Equal(t, domain.OutcomeFailed, entry.Outcome)
	assert.Equal(t, updateErr.Error(), entry.Message)

	failed, err := journal.ListByOutcome(context.Background(), domain.OutcomeFailed)
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestDocumentProcessor_JournalFailure(t *testing.T) {
	journal := failingJournal{memory.NewJournalStore()}

	t.Run("plugin succeeded", func(t *testing.T) {
		processor := NewDocumentProcessor(&mockPlugin{}, journal)
		entry, err := processor.Process(context.Background(), &domain.Document{ID: "doc-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, domain.OutcomeProcessed, entry.Outcome)
	})

	t.Run("plugin failed", func(t *testing.T) {
		cause := domain.NewUpdateError("u", errors.New("boom"))
		plugin := &mockPlugin{update: func(*domain.Document) error { return cause }}
		processor := NewDocumentProcessor(plugin, journal)
		_, err := processor.Process(context.Background(), &domain.Document{ID: "doc-1"})
		assert.Equal(t, cause, err)
	})
}

func TestDocumentProcessor_NilDocument(t *testing.T) {
	processor := NewDocumentProcessor(&mockPlugin{}, nil)
	_, err := processor.Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
