package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: FormatJSON, Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("fetched",
		String("source", "http://x/list"),
		Int("lines", 3),
		Bool("ok", true),
		Duration("took", 2*time.Second),
		Strings("tags", []string{"a", "b"}),
	)
	logger.Error("failed", Err(errors.New("boom")))

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["message"] != "fetched" || lines[0]["level"] != "info" {
		t.Errorf("unexpected first line: %v", lines[0])
	}
	if lines[0]["source"] != "http://x/list" {
		t.Errorf("source = %v", lines[0]["source"])
	}
	if lines[0]["lines"] != float64(3) {
		t.Errorf("lines = %v", lines[0]["lines"])
	}
	if lines[1]["error"] != "boom" {
		t.Errorf("error = %v", lines[1]["error"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: FormatJSON, Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Errorf("got %v, want only the warn line", lines)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: FormatJSON, Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child := logger.With(String("source", "a"), Int("index", 2))
	child.Info("hello")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0]["source"] != "a" || lines[0]["index"] != float64(2) {
		t.Errorf("child fields missing: %v", lines[0])
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("console line", String("k", "v"))
	if !strings.Contains(buf.String(), "console line") || !strings.Contains(buf.String(), "k=") {
		t.Errorf("console output = %q", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Info("x")
	if l.With(String("a", "b")) == nil {
		t.Error("With returned nil")
	}
}
