package adhosts

import (
	"time"

	"github.com/bft-labs/adhosts/internal/ports"
	"github.com/bft-labs/adhosts/pkg/fetch"
	"github.com/bft-labs/adhosts/pkg/log"
)

// Re-export types from sub-packages for convenient access.
type (
	// Logger is the interface from pkg/log.
	Logger = log.Logger

	// HTTPClient is the interface from pkg/fetch. *http.Client satisfies it.
	HTTPClient = fetch.HTTPClient

	// Fetcher retrieves the raw lines of one source.
	Fetcher = ports.Fetcher
)

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	httpClient fetch.HTTPClient
	fetcher    ports.Fetcher
	logger     log.Logger
	now        func() time.Time
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithHTTPClient sets the client used to download sources.
// If not provided, a pooled client from fetch.NewClient is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithFetcher replaces the HTTP fetcher entirely. WithHTTPClient, the
// timeout and the retry settings are ignored when a fetcher is set.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the time source for the artifact's "Last modified" stamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
