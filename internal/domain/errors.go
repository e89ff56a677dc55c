package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the adhosts domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrNoData is returned when a run produced no entries; no artifact is written.
	ErrNoData = errors.New("adhosts: no data")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("adhosts: invalid configuration")
)

// FetchKind is a coarse-grained categorization for fetch failures.
type FetchKind string

const (
	KindInvalidSource FetchKind = "invalid_source"
	KindTransport     FetchKind = "transport"
	KindBadStatus     FetchKind = "bad_status"
	KindRead          FetchKind = "read"
)

// FetchError describes why one source could not be fetched. It is local to
// that source and never aborts a run.
type FetchError struct {
	Op         string
	Kind       FetchKind
	Source     string
	StatusCode int // set for KindBadStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s %s: %s", e.Op, e.Source, e.Kind)
	if e.Kind == KindBadStatus {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind FetchKind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}
