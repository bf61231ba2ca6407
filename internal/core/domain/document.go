package domain

import (
	"bytes"
	"io"
	"sync"
)

// Document is a crawled document as handed to the plugin by the host.
// The plugin mutates it in place; the host observes the changes after
// UpdateDocument returns.
type Document struct {
	// ID is the host's identifier for the document.
	ID string

	// CrawlURL is the locator of the document. The plugin never changes it.
	CrawlURL string

	// Fields contains the document metadata.
	Fields Fields

	// Content is the document body. Nil means the document has no content.
	Content *Content

	// Exclude marks the document to be dropped from the index.
	Exclude bool

	// NoticeMessages are messages reported back to the host.
	// Messages are only ever appended.
	NoticeMessages []string
}

// AddNotice appends a notice message for the host.
func (d *Document) AddNotice(msg string) {
	d.NoticeMessages = append(d.NoticeMessages, msg)
}

// NewContent creates a content holding body in memory.
func NewContent(contentType string, body []byte) *Content {
	c := &Content{ContentType: contentType}
	c.setBody(body)
	return c
}

// NewContentFromOpener creates a content whose body is produced by open,
// for example a file on disk. open is called once per Reader call.
func NewContentFromOpener(contentType string, open func() (io.ReadCloser, error)) *Content {
	return &Content{ContentType: contentType, open: open}
}

// NewEmptyContent creates a content with no body, type or charset.
func NewEmptyContent() *Content {
	return NewContent("", nil)
}

// Content is the body of a document with its declared type and charset.
//
// A content can be read and written at the same time: Writer buffers the
// new body and only replaces the current one when the writer is closed,
// so a rewrite can stream from Reader into Writer.
type Content struct {
	// ContentType is the declared MIME type. Empty means unset.
	ContentType string

	// Charset is the declared character encoding. Empty means unset,
	// which readers treat as UTF-8.
	Charset string

	mu   sync.Mutex
	open func() (io.ReadCloser, error)
}

// Reader opens the current body for reading. The caller must close it.
func (c *Content) Reader() (io.ReadCloser, error) {
	c.mu.Lock()
	open := c.open
	c.mu.Unlock()

	if open == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return open()
}

// Writer returns a sink for a new body. The body written so far replaces
// the current one when the sink is closed, including after a failed write.
func (c *Content) Writer() io.WriteCloser {
	return &contentWriter{content: c}
}

// Bytes reads the whole current body.
func (c *Content) Bytes() ([]byte, error) {
	r, err := c.Reader()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (c *Content) setBody(body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}
}

// contentWriter buffers writes and commits them to its content on Close.
type contentWriter struct {
	content *Content
	buf     bytes.Buffer
	closed  bool
}

func (w *contentWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrContentClosed
	}
	return w.buf.Write(p)
}

func (w *contentWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.content.setBody(w.buf.Bytes())
	return nil
}
