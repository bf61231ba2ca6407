// Package docfile reads and writes JSON document descriptors, the
// on-disk form of the documents a host hands to the plugin.
package docfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// Extension is the file extension of descriptor files.
const Extension = ".json"

// descriptor is the JSON layout of a document.
type descriptor struct {
	ID             string             `json:"id,omitempty"`
	CrawlURL       string             `json:"crawl_url"`
	Fields         domain.Fields      `json:"fields,omitempty"`
	Content        *contentDescriptor `json:"content,omitempty"`
	Exclude        bool               `json:"exclude,omitempty"`
	NoticeMessages []string           `json:"notice_messages,omitempty"`
}

// contentDescriptor holds the body inline as text, or points at a file.
// A relative path is resolved against the descriptor's directory.
type contentDescriptor struct {
	Text        *string `json:"text,omitempty"`
	Path        string  `json:"path,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	Charset     string  `json:"charset,omitempty"`
}

// Load reads the descriptor at path.
func Load(path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a descriptor from r. Content paths are resolved against
// baseDir. A descriptor without an id is given a new one.
func Decode(r io.Reader, baseDir string) (*domain.Document, error) {
	var d descriptor
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: decode descriptor: %v", domain.ErrInvalidInput, err)
	}

	doc := &domain.Document{
		ID:             d.ID,
		CrawlURL:       d.CrawlURL,
		Fields:         d.Fields,
		Exclude:        d.Exclude,
		NoticeMessages: d.NoticeMessages,
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Fields == nil {
		doc.Fields = domain.Fields{}
	}
	if d.Content != nil {
		doc.Content = d.Content.toContent(baseDir)
	}
	return doc, nil
}

func (c *contentDescriptor) toContent(baseDir string) *domain.Content {
	var content *domain.Content
	switch {
	case c.Text != nil:
		content = domain.NewContent(c.ContentType, []byte(*c.Text))
	case c.Path != "":
		path := c.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		content = domain.NewContentFromOpener(c.ContentType, func() (io.ReadCloser, error) {
			return os.Open(path)
		})
	default:
		content = domain.NewEmptyContent()
		content.ContentType = c.ContentType
	}
	content.Charset = c.Charset
	return content
}

// Encode writes doc as an indented descriptor. Content is always
// written inline as UTF-8 text; a body in another charset is transcoded
// and its charset rewritten to UTF-8.
func Encode(w io.Writer, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	d := descriptor{
		ID:             doc.ID,
		CrawlURL:       doc.CrawlURL,
		Fields:         doc.Fields,
		Exclude:        doc.Exclude,
		NoticeMessages: doc.NoticeMessages,
	}
	if doc.Content != nil {
		text, charset, err := bodyText(doc.Content)
		if err != nil {
			return err
		}
		d.Content = &contentDescriptor{
			Text:        &text,
			ContentType: doc.Content.ContentType,
			Charset:     charset,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}
	return nil
}

// bodyText returns the content body as UTF-8 text along with the charset
// to record for it.
func bodyText(c *domain.Content) (string, string, error) {
	body, err := c.Bytes()
	if err != nil {
		return "", "", fmt.Errorf("read content: %w", err)
	}

	switch strings.ToLower(c.Charset) {
	case "", "utf-8", "utf8":
		return string(body), c.Charset, nil
	}

	enc, err := htmlindex.Get(c.Charset)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", domain.ErrUnsupportedCharset, c.Charset)
	}
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return "", "", fmt.Errorf("decode content: %w", err)
	}
	return string(decoded), "UTF-8", nil
}

// Save writes doc to path, creating parent directories as needed.
func Save(path string, doc *domain.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create descriptor: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
