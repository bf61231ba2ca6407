package stages

import "github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"

// ContentKind is the logical type of a document's content.
type ContentKind int

const (
	// ContentOther is content that matches no known signature.
	ContentOther ContentKind = iota

	// ContentText is plain text content.
	ContentText

	// ContentCSV is comma-separated content.
	ContentCSV

	// ContentAbsent means the document has no content.
	ContentAbsent
)

// String returns the kind name.
func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentCSV:
		return "csv"
	case ContentAbsent:
		return "absent"
	default:
		return "other"
	}
}

// signature identifies a content kind by MIME type or file extension.
type signature struct {
	kind      ContentKind
	mimeType  string
	extension string
}

// signatures are checked in order; text wins over csv.
var signatures = []signature{
	{kind: ContentText, mimeType: "text/plain", extension: ".txt"},
	{kind: ContentCSV, mimeType: "text/csv", extension: ".csv"},
}

// Classify returns the kind of content. Nil content is ContentAbsent
// without looking at the fields. Otherwise the first signature whose
// MIME type equals the declared content type, or whose extension equals
// the extension field, wins.
func Classify(fields domain.Fields, content *domain.Content) ContentKind {
	if content == nil {
		return ContentAbsent
	}

	for _, sig := range signatures {
		if sig.matches(fields, content) {
			return sig.kind
		}
	}
	return ContentOther
}

func (sig signature) matches(fields domain.Fields, content *domain.Content) bool {
	if content.ContentType != "" && content.ContentType == sig.mimeType {
		return true
	}

	ext := fields.Get(domain.FieldExtension)
	return !ext.IsAbsent() && ext.String() == sig.extension
}
