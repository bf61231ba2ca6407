package stages

import "github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"

// Default builds the standard pipeline: exclusion, then field rewriting,
// then content handling.
func Default(fetcher driven.ContentFetcher, opts ...ContentOption) *Pipeline {
	return NewPipeline(
		NewExclusion(),
		NewFieldRewriter(),
		NewContentRewriter(fetcher, opts...),
	)
}
