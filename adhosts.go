package adhosts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/adhosts/internal/app"
	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/internal/metrics"
	"github.com/bft-labs/adhosts/pkg/fetch"
	"github.com/bft-labs/adhosts/pkg/hosts"
	"github.com/bft-labs/adhosts/pkg/rule"
)

// DefaultOutput is the artifact path used when Config.Output is empty.
const DefaultOutput = hosts.DefaultPath

// DefaultSources returns the rule lists compiled when none are configured.
func DefaultSources() []string {
	return []string{
		"https://raw.githubusercontent.com/hagezi/dns-blocklists/main/adblock/pro.mini.txt",
		"https://raw.githubusercontent.com/hagezi/dns-blocklists/main/adblock/tif.mini.txt",
	}
}

type (
	// Summary is the outcome of a run.
	Summary = app.Summary

	// Result holds per-source statistics, totals and the produced entries.
	Result = domain.RunResult

	// SourceStat is the per-source part of a Result.
	SourceStat = domain.SourceStat

	// Banner is the descriptive block written at the top of the artifact.
	Banner = hosts.Banner
)

// Sentinel errors re-exported for errors.Is checks.
var (
	ErrNoData        = domain.ErrNoData
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// Config holds the configuration of a run.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Sources are rule-list locations (http, https or file URLs).
	Sources []string

	// Output is the artifact path. Default: hosts.txt
	Output string

	// HTTPTimeout bounds each fetch attempt. Default: 10 seconds
	HTTPTimeout time.Duration

	// Retries is how many extra attempts a transient failure gets. Default: 0
	Retries int

	// Concurrency caps simultaneous fetches; zero means one per source.
	Concurrency int

	// UserAgent is sent with every request when non-empty.
	UserAgent string

	// MetricsFile, when set, receives a prometheus textfile after every run.
	MetricsFile string

	Banner Banner
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Sources:     DefaultSources(),
		Output:      DefaultOutput,
		HTTPTimeout: fetch.DefaultTimeout,
		Banner:      hosts.DefaultBanner(),
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = fetch.DefaultTimeout
	}
	if c.Banner == (Banner{}) {
		c.Banner = hosts.DefaultBanner()
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	for _, s := range c.Sources {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: empty source", ErrInvalidConfig)
		}
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Run fetches, converts and writes once. The returned error is non-nil for
// invalid configuration or when the artifact could not be written; a run
// without data returns a Summary with NoData set and a nil error.
func Run(ctx context.Context, cfg Config, opts ...Option) (Summary, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fetcher := o.fetcher
	if fetcher == nil {
		client := o.httpClient
		if client == nil {
			owned := fetch.NewClient(fetch.DefaultClientConfig())
			defer owned.CloseIdleConnections()
			client = owned
		}
		fcfg := fetch.DefaultConfig()
		fcfg.Timeout = cfg.HTTPTimeout
		fcfg.Retries = cfg.Retries
		fcfg.UserAgent = cfg.UserAgent
		fetcher = fetch.NewHTTPFetcher(client, fcfg, o.logger)
	}

	writerOpts := []hosts.Option{hosts.WithBanner(cfg.Banner)}
	if o.now != nil {
		writerOpts = append(writerOpts, hosts.WithClock(o.now))
	}

	var recorder *metrics.Recorder
	if cfg.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}

	pipeline := app.NewPipeline(fetcher, rule.NewConverter(), o.logger, cfg.Concurrency)
	a := app.New(pipeline, hosts.NewWriter(writerOpts...), recorder, o.logger)

	return a.Run(ctx, app.RunConfig{
		Sources:     cfg.Sources,
		Output:      cfg.Output,
		MetricsFile: cfg.MetricsFile,
	})
}
