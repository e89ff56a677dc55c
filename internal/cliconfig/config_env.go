package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ADHOSTS_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setListFromString("source", os.Getenv("ADHOSTS_SOURCES"), &cfg.Sources)
	s.setString("output", os.Getenv("ADHOSTS_OUTPUT"), &cfg.Output)
	s.setString("user-agent", os.Getenv("ADHOSTS_USER_AGENT"), &cfg.UserAgent)
	s.setString("metrics-file", os.Getenv("ADHOSTS_METRICS_FILE"), &cfg.MetricsFile)
	s.setString("log-level", os.Getenv("ADHOSTS_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("ADHOSTS_LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("timeout", os.Getenv("ADHOSTS_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setIntFromString("retries", os.Getenv("ADHOSTS_RETRIES"), &cfg.Retries); err != nil {
		return err
	}
	if err := s.setIntFromString("concurrency", os.Getenv("ADHOSTS_CONCURRENCY"), &cfg.Concurrency); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("ADHOSTS_WATCH"), &cfg.Watch)

	return nil
}
