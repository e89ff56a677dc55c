package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/pkg/log"
)

// DefaultTimeout bounds a single fetch attempt.
const DefaultTimeout = 10 * time.Second

const fetchOp = "fetch"

// Config controls fetch behavior.
type Config struct {
	// Timeout bounds one attempt, body included. Default: 10 seconds.
	Timeout time.Duration

	// Retries is the number of extra attempts after a transport error or a
	// 429/5xx status. Default: 0 (a single GET).
	Retries int

	// UserAgent is sent when non-empty.
	UserAgent string

	// BackoffInitial and BackoffMax shape the delay between retries.
	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// DefaultConfig returns a Config with the single-attempt defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        DefaultTimeout,
		BackoffInitial: DefaultBackoffInitial,
		BackoffMax:     DefaultBackoffMax,
	}
}

// HTTPFetcher fetches rule lists over HTTP. It is safe for concurrent use.
type HTTPFetcher struct {
	client HTTPClient
	cfg    Config
	logger log.Logger
}

// NewHTTPFetcher creates a fetcher using client for every request.
func NewHTTPFetcher(client HTTPClient, cfg Config, logger log.Logger) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &HTTPFetcher{client: client, cfg: cfg, logger: logger}
}

// Fetch retrieves source and returns its trimmed, non-empty lines.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]domain.RawRule, error) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" {
		if err == nil {
			err = errors.New("missing scheme")
		}
		return nil, &domain.FetchError{Op: fetchOp, Kind: domain.KindInvalidSource, Source: source, Err: err}
	}

	back := newBackoff(f.cfg.BackoffInitial, f.cfg.BackoffMax)
	for attempt := 0; ; attempt++ {
		rules, err := f.fetchOnce(ctx, source)
		if err == nil {
			return rules, nil
		}
		if attempt >= f.cfg.Retries || !retryable(err) || ctx.Err() != nil {
			return nil, err
		}

		f.logger.Warn("fetch attempt failed, retrying",
			log.String("source", source),
			log.Int("attempt", attempt+1),
			log.Duration("backoff", back.Current()),
			log.Err(err),
		)
		if werr := back.Wait(ctx); werr != nil {
			return nil, err
		}
	}
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, source string) ([]domain.RawRule, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &domain.FetchError{Op: fetchOp, Kind: domain.KindInvalidSource, Source: source, Err: err}
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Op: fetchOp, Kind: domain.KindTransport, Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &domain.FetchError{
			Op:         fetchOp,
			Kind:       domain.KindBadStatus,
			Source:     source,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server returned %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := domain.KindRead
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.KindTransport
		}
		return nil, &domain.FetchError{Op: fetchOp, Kind: kind, Source: source, Err: err}
	}

	return SplitLines(Decode(body), source), nil
}

func retryable(err error) bool {
	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	switch fe.Kind {
	case domain.KindTransport:
		return true
	case domain.KindBadStatus:
		return fe.StatusCode == http.StatusTooManyRequests || fe.StatusCode >= 500
	default:
		return false
	}
}
