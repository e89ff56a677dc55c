// Package log provides the logging abstraction used across adhosts.
//
// This package defines a Logger interface that can be implemented by any
// logging library. A zerolog adapter is the default implementation and a
// no-op logger is provided for tests and quiet library use.
//
// # Usage
//
// Build a console or JSON logger from options:
//
//	logger, err := log.New(log.Options{Level: "info", Format: "console"})
//
// Wrap an existing zerolog.Logger:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//
// Attach per-source context:
//
//	srcLog := logger.With(log.String("source", url))
//	srcLog.Warn("fetch failed", log.Err(err))
package log
