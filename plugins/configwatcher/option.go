package configwatcher

import "github.com/bft-labs/adhosts/pkg/log"

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for change and error messages.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
