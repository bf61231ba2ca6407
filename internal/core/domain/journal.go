package domain

import "time"

// Outcome is the result of processing one document.
type Outcome string

// Available outcomes.
const (
	// OutcomeProcessed means the document was updated and should be indexed.
	OutcomeProcessed Outcome = "processed"

	// OutcomeExcluded means the plugin excluded the document.
	OutcomeExcluded Outcome = "excluded"

	// OutcomeFailed means the plugin returned a fatal error.
	OutcomeFailed Outcome = "failed"
)

// IsValid returns true if the outcome is recognised.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeProcessed, OutcomeExcluded, OutcomeFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o Outcome) String() string {
	return string(o)
}

// JournalEntry records what happened to one document.
type JournalEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// DocumentID is the host's identifier for the document.
	DocumentID string

	// CrawlURL is the document locator.
	CrawlURL string

	// Outcome is the processing result.
	Outcome Outcome

	// Message holds the notice or error text, if any.
	Message string

	// ProcessedAt is when the document was processed.
	ProcessedAt time.Time
}
