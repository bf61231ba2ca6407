package stages

import (
	"context"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/normalisers/date"
)

// Ensure FieldRewriter implements the interface.
var _ driven.Stage = (*FieldRewriter)(nil)

// fieldRule derives one field from another. Rules are independent of
// each other.
type fieldRule struct {
	source  string
	target  string
	derive  func(string) string
	restore bool // write the trimmed value back to source
}

var fieldRules = []fieldRule{
	{source: domain.FieldRole, target: domain.FieldExtendedRole, derive: identity, restore: true},
	{source: domain.FieldBusinessGroup, target: domain.FieldExtendedBusinessGroup, derive: identity, restore: true},
	{source: domain.FieldLastUpdatedDate, target: domain.FieldLastModified, derive: date.FormatEpoch},
	{source: domain.FieldDate, target: domain.FieldNewDate, derive: date.FormatFreeText},
}

func identity(s string) string { return s }

// FieldRewriter copies reserved fields into their extended or derived
// counterparts. Derived fields are always overwritten, so running the
// stage twice gives the same fields as running it once.
type FieldRewriter struct{}

// NewFieldRewriter creates the field rewriting stage.
func NewFieldRewriter() *FieldRewriter {
	return &FieldRewriter{}
}

// Name returns the stage name.
func (s *FieldRewriter) Name() string {
	return "fields"
}

// Apply rewrites every reserved field present in the document.
// Absent fields are skipped.
func (s *FieldRewriter) Apply(_ context.Context, doc *domain.Document) (driven.StageResult, error) {
	if doc.Fields == nil {
		return driven.Continue, nil
	}

	for _, rule := range fieldRules {
		value := doc.Fields.Get(rule.source)
		if value.IsAbsent() {
			continue
		}

		trimmed := value.Trimmed()
		doc.Fields.SetString(rule.target, rule.derive(trimmed))
		if rule.restore {
			doc.Fields.SetString(rule.source, trimmed)
		}
	}

	return driven.Continue, nil
}
