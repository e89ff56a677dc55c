package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FetchError
		want []string
	}{
		{
			name: "bad status carries code",
			err:  &FetchError{Op: "fetch", Kind: KindBadStatus, Source: "http://x/list", StatusCode: 500},
			want: []string{"fetch http://x/list", "bad_status", "HTTP 500"},
		},
		{
			name: "transport wraps cause",
			err:  &FetchError{Op: "fetch", Kind: KindTransport, Source: "http://x/list", Err: errors.New("connection refused")},
			want: []string{"transport", "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Error() = %q, want substring %q", got, w)
				}
			}
		})
	}
}

func TestFetchError_NilReceiver(t *testing.T) {
	var e *FetchError
	if e.Error() != "<nil>" {
		t.Errorf("Error() = %q, want <nil>", e.Error())
	}
	if e.Unwrap() != nil {
		t.Error("Unwrap() on nil receiver should be nil")
	}
}

func TestIsKind(t *testing.T) {
	base := &FetchError{Op: "fetch", Kind: KindTransport, Source: "s", Err: context.DeadlineExceeded}
	wrapped := fmt.Errorf("outer: %w", base)

	if !IsKind(wrapped, KindTransport) {
		t.Error("IsKind(wrapped, transport) = false, want true")
	}
	if IsKind(wrapped, KindBadStatus) {
		t.Error("IsKind(wrapped, bad_status) = true, want false")
	}
	if IsKind(errors.New("plain"), KindTransport) {
		t.Error("IsKind(plain) = true, want false")
	}
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestVerdict(t *testing.T) {
	v := Accepted(Entry{Domain: "example.com"})
	e, ok := v.Entry()
	if !ok || e.Domain != "example.com" {
		t.Fatalf("Entry() = %v, %v", e, ok)
	}
	if v.Reason() != ReasonNone {
		t.Errorf("Reason() = %v, want none", v.Reason())
	}
	if e.String() != "0.0.0.0 example.com" {
		t.Errorf("String() = %q", e.String())
	}

	r := Rejected(ReasonInvalidDomain)
	if r.IsAccepted() {
		t.Error("rejected verdict reports accepted")
	}
	if _, ok := r.Entry(); ok {
		t.Error("rejected verdict returned an entry")
	}
	if r.Reason().String() != "invalid_domain" {
		t.Errorf("Reason() = %v", r.Reason())
	}
}

func TestRunResult(t *testing.T) {
	r := RunResult{
		Sources: []SourceStat{
			{Source: "a", Fetched: 2},
			{Source: "b", Err: errors.New("boom")},
		},
	}
	if !r.Empty() {
		t.Error("Empty() = false for result without entries")
	}
	if r.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", r.Failed())
	}
	r.Entries = []Entry{{Domain: "example.com"}}
	if r.Empty() {
		t.Error("Empty() = true for result with entries")
	}
}
