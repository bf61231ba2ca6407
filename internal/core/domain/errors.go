package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedCharset indicates a content charset with no known decoder.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrContentClosed indicates a write to an already closed content sink.
	ErrContentClosed = errors.New("content writer closed")

	// ErrDocumentUpdate matches every *UpdateError via errors.Is.
	ErrDocumentUpdate = errors.New("document update failed")
)

// UpdateError is the fatal failure of one document. The host records the
// document as failed; fields already rewritten stay rewritten.
type UpdateError struct {
	CrawlURL string
	Err      error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("the document %s cannot be updated by the crawler plugin: %v", e.CrawlURL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UpdateError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDocumentUpdate.
func (e *UpdateError) Is(target error) bool {
	return target == ErrDocumentUpdate
}

// NewUpdateError wraps err as the failure of the document at crawlURL.
func NewUpdateError(crawlURL string, err error) *UpdateError {
	return &UpdateError{CrawlURL: crawlURL, Err: err}
}
