package driving

import (
	"context"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// CrawlerPlugin is the contract between the crawling host and the plugin.
type CrawlerPlugin interface {
	// Init is called once before any document, with read-only configuration.
	Init(cfg domain.PluginConfiguration) error

	// UpdateDocument mutates doc in place. A non-nil error is always a
	// *domain.UpdateError and means the document failed.
	UpdateDocument(ctx context.Context, doc *domain.Document) error

	// Term is called once at shutdown.
	Term() error
}

// DocumentProcessor runs the plugin for one document on behalf of the host
// and records the outcome.
type DocumentProcessor interface {
	// Process updates doc and returns the journal entry written for it.
	// The plugin's failure is returned alongside the entry.
	Process(ctx context.Context, doc *domain.Document) (*domain.JournalEntry, error)
}
