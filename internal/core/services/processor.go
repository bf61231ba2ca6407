package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// Ensure DocumentProcessor implements the interface.
var _ driving.DocumentProcessor = (*DocumentProcessor)(nil)

// DocumentProcessor plays the host's part around the plugin: it runs the
// plugin on a document and journals the outcome.
type DocumentProcessor struct {
	plugin  driving.CrawlerPlugin
	journal driven.JournalStore
	now     func() time.Time
}

// NewDocumentProcessor creates a processor. A nil journal disables recording.
func NewDocumentProcessor(plugin driving.CrawlerPlugin, journal driven.JournalStore) *DocumentProcessor {
	return &DocumentProcessor{
		plugin:  plugin,
		journal: journal,
		now:     time.Now,
	}
}

// Process runs the plugin on doc and records the outcome. The plugin's
// error is returned with the entry; a journal failure is returned only
// when the plugin succeeded.
func (p *DocumentProcessor) Process(ctx context.Context, doc *domain.Document) (*domain.JournalEntry, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	updateErr := p.plugin.UpdateDocument(ctx, doc)

	entry := &domain.JournalEntry{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		CrawlURL:    doc.CrawlURL,
		ProcessedAt: p.now(),
	}
	switch {
	case updateErr != nil:
		entry.Outcome = domain.OutcomeFailed
		entry.Message = updateErr.Error()
	case doc.Exclude:
		entry.Outcome = domain.OutcomeExcluded
		entry.Message = strings.Join(doc.NoticeMessages, "\n")
	default:
		entry.Outcome = domain.OutcomeProcessed
		entry.Message = strings.Join(doc.NoticeMessages, "\n")
	}

	if p.journal != nil {
		if err := p.journal.Record(ctx, entry); err != nil {
			logger.Warn("Failed to journal %s: %v", doc.CrawlURL, err)
			if updateErr == nil {
				return entry, fmt.Errorf("record journal entry: %w", err)
			}
		}
	}

	return entry, updateErr
}
