package driven

import (
	"context"
	"io"
)

// FetchResult is the response to a content fetch.
type FetchResult struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// ContentType is the declared Content-Type header value, or "" if none.
	ContentType string

	// Charset is the declared charset, or "" if none.
	Charset string

	// Body is the response body. The caller must close it.
	Body io.ReadCloser
}

// ContentFetcher retrieves document content from a URL.
type ContentFetcher interface {
	// Fetch issues a GET for url. Non-success statuses are returned as
	// results, not errors; errors are reserved for transport failures.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}
