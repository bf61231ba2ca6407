// Package httpfetch implements driven.ContentFetcher over HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Option configures the Fetcher.
type Option func(*config)

type config struct {
	httpClient *http.Client
	timeout    time.Duration
	rateLimit  RateLimitConfig
}

// WithHTTPClient sets the HTTP client. Its timeout is kept as is.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// 0 means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithRateLimit limits fetches to rps requests per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(cfg *config) {
		cfg.rateLimit = RateLimitConfig{RequestsPerSecond: rps, BurstSize: burst}
	}
}

// Fetcher retrieves content with plain HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	limiter *RateLimiter
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	cfg := &config{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.httpClient
	if client == nil {
		client = &http.Client{Timeout: cfg.timeout}
	}

	return &Fetcher{
		client:  client,
		limiter: NewRateLimiter(cfg.rateLimit),
	}
}

// Fetch issues a GET for url with no custom headers. Any status is
// returned as a result; the caller closes the body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*driven.FetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		f.limiter.RecordRateLimited(resp.Header.Get("Retry-After"))
		logger.Warn("Rate limited by %s, backing off until %s", req.URL.Host, f.limiter.RetryAt().Format(time.RFC3339))
	}

	contentType := resp.Header.Get("Content-Type")
	logger.Debug("GET %s: %d %s", url, resp.StatusCode, contentType)

	return &driven.FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Charset:     charsetOf(contentType),
		Body:        resp.Body,
	}, nil
}

// charsetOf returns the charset parameter of a Content-Type value, or ""
// if there is none or the value does not parse.
func charsetOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
