package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bft-labs/adhosts/internal/domain"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Sources = []string{"https://example.com/list.txt"}
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Sources) != 2 {
		t.Errorf("len(Sources) = %d, want 2", len(cfg.Sources))
	}
	if cfg.Output != "hosts.txt" {
		t.Errorf("Output = %v, want hosts.txt", cfg.Output)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.Retries != 0 || cfg.Concurrency != 0 {
		t.Errorf("Retries/Concurrency = %d/%d, want 0/0", cfg.Retries, cfg.Concurrency)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("log = %s/%s, want info/console", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Banner.Homepage == "" {
		t.Error("Banner.Homepage is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no sources", func(c *Config) { c.Sources = nil }, true},
		{"only blank sources", func(c *Config) { c.Sources = []string{" ", ""} }, true},
		{"empty output", func(c *Config) { c.Output = "  " }, true},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }, true},
		{"negative retries", func(c *Config) { c.Retries = -1 }, true},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, true},
		{"unknown level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"unknown format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"json format", func(c *Config) { c.LogFormat = "json" }, false},
		{"warn level", func(c *Config) { c.LogLevel = "warn" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_NormalizesSources(t *testing.T) {
	cfg := validConfig()
	cfg.Sources = []string{" https://b.example/list ", "https://a.example/list", "", "https://b.example/list"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []string{"https://b.example/list", "https://a.example/list"}
	if diff := cmp.Diff(want, cfg.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Library(t *testing.T) {
	cfg := validConfig()
	cfg.Retries = 2
	cfg.Concurrency = 4
	cfg.MetricsFile = "/var/lib/node_exporter/adhosts.prom"

	lib := cfg.Library()
	if lib.Retries != 2 || lib.Concurrency != 4 || lib.MetricsFile != cfg.MetricsFile {
		t.Errorf("Library() = %+v", lib)
	}
	if diff := cmp.Diff(cfg.Sources, lib.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if lib.Banner != cfg.Banner {
		t.Errorf("Banner = %+v, want %+v", lib.Banner, cfg.Banner)
	}
}

func TestConfigSetter_RespectsChanged(t *testing.T) {
	s := newConfigSetter(map[string]bool{"output": true, "retries": true})

	out := "flag.txt"
	s.setString("output", "file.txt", &out)
	if out != "flag.txt" {
		t.Errorf("output = %q, want flag.txt", out)
	}

	retries := 3
	zero := 0
	s.setInt("retries", &zero, &retries)
	if retries != 3 {
		t.Errorf("retries = %d, want 3", retries)
	}

	conc := 5
	s.setInt("concurrency", &zero, &conc)
	if conc != 0 {
		t.Errorf("concurrency = %d, want 0", conc)
	}
}

func TestConfigSetter_SetListFromString(t *testing.T) {
	s := newConfigSetter(nil)

	var got []string
	s.setListFromString("source", " https://a.example , ,https://b.example,", &got)
	want := []string{"https://a.example", "https://b.example"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	keep := []string{"x"}
	s.setListFromString("source", " , ", &keep)
	if diff := cmp.Diff([]string{"x"}, keep); diff != "" {
		t.Errorf("blank list overwrote value (-want +got):\n%s", diff)
	}
}
