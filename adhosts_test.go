package adhosts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/adhosts"
	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/internal/ports"
)

func TestDefaultConfig(t *testing.T) {
	cfg := adhosts.DefaultConfig()
	if len(cfg.Sources) != 2 {
		t.Errorf("len(Sources) = %d, want 2", len(cfg.Sources))
	}
	if cfg.Output != "hosts.txt" {
		t.Errorf("Output = %q, want hosts.txt", cfg.Output)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.Retries != 0 {
		t.Errorf("Retries = %d, want 0", cfg.Retries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*adhosts.Config)
	}{
		{"blank source", func(c *adhosts.Config) { c.Sources = []string{" "} }},
		{"negative retries", func(c *adhosts.Config) { c.Retries = -1 }},
		{"negative concurrency", func(c *adhosts.Config) { c.Concurrency = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := adhosts.DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, adhosts.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestRun_WithFetcherAndClock(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hosts.txt")
	f := ports.FetcherFunc(func(_ context.Context, source string) ([]domain.RawRule, error) {
		return []domain.RawRule{{Text: "||blocked.example.org^", Source: source}}, nil
	})
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	cfg := adhosts.Config{
		Sources: []string{"mem://one"},
		Output:  out,
		Banner:  adhosts.Banner{Title: "Test", Homepage: "https://example.org", License: "MIT"},
	}
	summary, err := adhosts.Run(context.Background(), cfg,
		adhosts.WithFetcher(f),
		adhosts.WithClock(func() time.Time { return stamp }),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Written {
		t.Fatal("artifact not written")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{
		"# Title: Test\n",
		"# Last modified: 2025-01-02T03:04:05Z\n",
		"# Source: mem://one\n",
		"0.0.0.0 blocked.example.org\n",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("artifact missing %q", want)
		}
	}
}

func TestRun_NoSources(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hosts.txt")
	summary, err := adhosts.Run(context.Background(), adhosts.Config{Output: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.NoData {
		t.Error("NoData = false, want true")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("artifact written without data: %v", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := adhosts.DefaultConfig()
	cfg.Retries = -1
	if _, err := adhosts.Run(context.Background(), cfg); !errors.Is(err, adhosts.ErrInvalidConfig) {
		t.Errorf("Run() = %v, want ErrInvalidConfig", err)
	}
}
