package stages

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

const (
	// UTF8 is the charset of every rewritten content.
	UTF8 = "UTF-8"

	// maxLineSize bounds a single line of rewritten text.
	maxLineSize = 16 * 1024 * 1024
)

// DefaultReplacements are the substitutions applied to text content.
var DefaultReplacements = []string{"IBM", "International Business Machines"}

// Ensure ContentRewriter implements the interface.
var _ driven.Stage = (*ContentRewriter)(nil)

// ContentRewriter handles a document's content by kind: text is rewritten,
// csv is dropped, and absent content is fetched from the content URL.
type ContentRewriter struct {
	fetcher  driven.ContentFetcher
	replacer *strings.Replacer
}

// ContentOption configures a ContentRewriter.
type ContentOption func(*ContentRewriter)

// WithReplacements overrides DefaultReplacements with old, new pairs.
// An odd number of arguments is ignored and the defaults are kept.
func WithReplacements(oldnew ...string) ContentOption {
	return func(s *ContentRewriter) {
		if len(oldnew)%2 != 0 {
			logger.Warn("Ignoring %d replacement arguments, want old, new pairs", len(oldnew))
			return
		}
		s.replacer = strings.NewReplacer(oldnew...)
	}
}

// NewContentRewriter creates the content stage. A nil fetcher disables
// fallback fetching.
func NewContentRewriter(fetcher driven.ContentFetcher, opts ...ContentOption) *ContentRewriter {
	s := &ContentRewriter{
		fetcher:  fetcher,
		replacer: strings.NewReplacer(DefaultReplacements...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the stage name.
func (s *ContentRewriter) Name() string {
	return "content"
}

// Apply runs the branch for the document's content kind.
// I/O failures are returned as *domain.UpdateError.
func (s *ContentRewriter) Apply(ctx context.Context, doc *domain.Document) (driven.StageResult, error) {
	kind := Classify(doc.Fields, doc.Content)
	logger.Debug("Content of %s classified as %s", doc.CrawlURL, kind)

	var err error
	switch kind {
	case ContentText:
		err = s.rewrite(doc)
	case ContentCSV:
		doc.Content = nil
	case ContentAbsent:
		err = s.fetch(ctx, doc)
	}
	if err != nil {
		return driven.Stop, domain.NewUpdateError(doc.CrawlURL, err)
	}
	return driven.Continue, nil
}

// rewrite streams the content line by line through the replacer into a
// new UTF-8 body. Both the reader and the sink are closed on every path.
func (s *ContentRewriter) rewrite(doc *domain.Document) (err error) {
	content := doc.Content

	enc, err := lookupCharset(content.Charset)
	if err != nil {
		return err
	}

	r, err := content.Reader()
	if err != nil {
		return fmt.Errorf("open content: %w", err)
	}
	defer r.Close()

	sink := content.Writer()
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close content: %w", closeErr)
		}
	}()

	scanner := bufio.NewScanner(transform.NewReader(r, enc.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanLines)

	w := bufio.NewWriter(sink)
	for scanner.Scan() {
		if _, err := s.replacer.WriteString(w, scanner.Text()); err != nil {
			return fmt.Errorf("write content: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write content: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write content: %w", err)
	}

	content.Charset = UTF8
	return nil
}

// fetch attaches content retrieved from the content URL field. A
// non-200 response attaches an empty content.
func (s *ContentRewriter) fetch(ctx context.Context, doc *domain.Document) error {
	if !doc.Fields.Has(domain.FieldContentURL) {
		return nil
	}
	if s.fetcher == nil {
		logger.Warn("No content fetcher configured, %s left without content", doc.CrawlURL)
		return nil
	}

	url := doc.Fields.Get(domain.FieldContentURL).String()
	result, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	if result.Body != nil {
		defer result.Body.Close()
	}

	content := domain.NewEmptyContent()
	if result.StatusCode == http.StatusOK {
		if err := copyBody(content, result.Body); err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		content.ContentType = result.ContentType
		content.Charset = result.Charset
	} else {
		logger.Debug("Fetch %s returned status %d, attaching empty content", url, result.StatusCode)
	}

	doc.Content = content
	return nil
}

func copyBody(content *domain.Content, body io.Reader) error {
	sink := content.Writer()
	var copyErr error
	if body != nil {
		_, copyErr = io.Copy(sink, body)
	}
	return errors.Join(copyErr, sink.Close())
}

// lookupCharset returns the encoding for a charset name. An empty name
// is UTF-8.
func lookupCharset(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCharset, name)
	}
	return enc, nil
}

// scanLines splits on \n, \r\n or a lone \r, without the terminator.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A \r at the end of the buffer may be followed by \n.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
