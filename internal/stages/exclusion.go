package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
)

// ExcludedMarker is the substring of a crawl URL that excludes a document.
const ExcludedMarker = "confidential"

// Ensure Exclusion implements the interface.
var _ driven.Stage = (*Exclusion)(nil)

// Exclusion drops documents whose crawl URL contains ExcludedMarker.
type Exclusion struct{}

// NewExclusion creates the exclusion stage.
func NewExclusion() *Exclusion {
	return &Exclusion{}
}

// Name returns the stage name.
func (s *Exclusion) Name() string {
	return "exclusion"
}

// Apply marks the document excluded and stops the pipeline when the
// crawl URL matches. The match is case-sensitive.
func (s *Exclusion) Apply(_ context.Context, doc *domain.Document) (driven.StageResult, error) {
	if !strings.Contains(doc.CrawlURL, ExcludedMarker) {
		return driven.Continue, nil
	}

	doc.Exclude = true
	doc.AddNotice(fmt.Sprintf("The document %s is excluded by the crawler plugin.", doc.CrawlURL))
	return driven.Stop, nil
}
