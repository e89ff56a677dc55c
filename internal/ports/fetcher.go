package ports

import (
	"context"

	"github.com/bft-labs/adhosts/internal/domain"
)

// Fetcher retrieves the rule lines of a single source.
// Implementations must be safe for concurrent use: the pipeline calls Fetch
// from one goroutine per source.
type Fetcher interface {
	// Fetch returns the non-empty, trimmed lines of source tagged with it.
	// A failure is reported as a *domain.FetchError.
	Fetch(ctx context.Context, source string) ([]domain.RawRule, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, source string) ([]domain.RawRule, error)

// Fetch calls f(ctx, source).
func (f FetcherFunc) Fetch(ctx context.Context, source string) ([]domain.RawRule, error) {
	return f(ctx, source)
}
