package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/adhosts"
	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/pkg/log"
)

// Config holds CLI configuration for adhosts.
type Config struct {
	Sources []string
	Output  string

	HTTPTimeout time.Duration
	Retries     int
	Concurrency int
	UserAgent   string

	MetricsFile string

	LogLevel  string
	LogFormat string

	Watch bool

	Banner adhosts.Banner
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lib := adhosts.DefaultConfig()
	return Config{
		Sources:     lib.Sources,
		Output:      lib.Output,
		HTTPTimeout: lib.HTTPTimeout,
		UserAgent:   "adhosts",
		LogLevel:    "info",
		LogFormat:   log.FormatConsole,
		Banner:      lib.Banner,
	}
}

// Validate checks the configuration for errors and normalizes sources.
func (c *Config) Validate() error {
	c.Sources = normalizeSources(c.Sources)
	if len(c.Sources) == 0 {
		return invalid("at least one source is required")
	}

	c.Output = strings.TrimSpace(c.Output)
	if c.Output == "" {
		return invalid("output path is required")
	}

	if c.HTTPTimeout <= 0 {
		return invalid("timeout must be positive")
	}
	if c.Retries < 0 {
		return invalid("retries must not be negative")
	}
	if c.Concurrency < 0 {
		return invalid("concurrency must not be negative")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return invalid(err.Error())
	}
	switch strings.ToLower(c.LogFormat) {
	case log.FormatConsole, log.FormatJSON:
	default:
		return invalid(fmt.Sprintf("unknown log format %q", c.LogFormat))
	}

	return nil
}

// Library converts the CLI configuration to a library Config.
func (c Config) Library() adhosts.Config {
	return adhosts.Config{
		Sources:     c.Sources,
		Output:      c.Output,
		HTTPTimeout: c.HTTPTimeout,
		Retries:     c.Retries,
		Concurrency: c.Concurrency,
		UserAgent:   c.UserAgent,
		MetricsFile: c.MetricsFile,
		Banner:      c.Banner,
	}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, msg)
}

// normalizeSources trims, drops blanks and removes duplicates, keeping order.
func normalizeSources(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a meaningful value for retries and concurrency.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setListFromString splits a comma separated list.
func (s *configSetter) setListFromString(flag, value string, dst *[]string) {
	if value == "" || s.changed[flag] {
		return
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}
