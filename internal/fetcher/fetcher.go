package fetcher

import (
	"context"

	"newsquarry/internal/types"
)

// Fetcher retrieves a page and reports the outcome as data. A transport
// failure is recorded as a FetchResult with status 500 and an empty
// body — the single-attempt, degrade-per-item policy of the pipeline.
type Fetcher interface {
	// Fetch retrieves the content at rawURL.
	Fetch(ctx context.Context, rawURL string) *types.FetchResult

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
