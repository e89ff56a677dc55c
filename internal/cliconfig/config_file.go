package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bft-labs/adhosts/internal/domain"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Sources     []string     `toml:"sources" yaml:"sources"`
	Output      string       `toml:"output" yaml:"output"`
	HTTPTimeout string       `toml:"http_timeout" yaml:"http_timeout"`
	Retries     *int         `toml:"retries" yaml:"retries"`
	Concurrency *int         `toml:"concurrency" yaml:"concurrency"`
	UserAgent   string       `toml:"user_agent" yaml:"user_agent"`
	MetricsFile string       `toml:"metrics_file" yaml:"metrics_file"`
	LogLevel    string       `toml:"log_level" yaml:"log_level"`
	LogFormat   string       `toml:"log_format" yaml:"log_format"`
	Watch       *bool        `toml:"watch" yaml:"watch"`
	Banner      BannerConfig `toml:"banner" yaml:"banner"`
}

// BannerConfig is the [banner] table.
type BannerConfig struct {
	Title    string `toml:"title" yaml:"title"`
	Homepage string `toml:"homepage" yaml:"homepage"`
	License  string `toml:"license" yaml:"license"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.adhosts/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".adhosts", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setStrings("source", fc.Sources, &cfg.Sources)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("user-agent", fc.UserAgent, &cfg.UserAgent)
	s.setString("metrics-file", fc.MetricsFile, &cfg.MetricsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setInt("retries", fc.Retries, &cfg.Retries)
	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	// The banner has no flags.
	s.setString("banner-title", fc.Banner.Title, &cfg.Banner.Title)
	s.setString("banner-homepage", fc.Banner.Homepage, &cfg.Banner.Homepage)
	s.setString("banner-license", fc.Banner.License, &cfg.Banner.License)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
