package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bft-labs/adhosts/internal/domain"
	"github.com/bft-labs/adhosts/internal/metrics"
	"github.com/bft-labs/adhosts/pkg/hosts"
)

type failingWriter struct{}

func (failingWriter) Write(domain.RunResult, string) error { return errors.New("disk full") }

func TestApp_Run_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "hosts.txt")
	prom := filepath.Join(dir, "adhosts.prom")

	f := staticFetcher{bodies: map[string]string{
		"a": "||example.com^\n",
		"b": "||example.com^\n",
	}}
	a := New(newTestPipeline(f), hosts.NewWriter(), metrics.NewRecorder(), nil)

	summary, err := a.Run(context.Background(), RunConfig{Sources: []string{"a", "b"}, Output: out, MetricsFile: prom})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Written || summary.NoData {
		t.Errorf("summary = %+v, want written", summary)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if n := strings.Count(string(data), "0.0.0.0 example.com\n"); n != 1 {
		t.Errorf("example.com lines = %d, want 1", n)
	}
	if !strings.Contains(string(data), "# Source: a\n# Successfully fetched 1 domains\n") {
		t.Errorf("missing source block:\n%s", data)
	}

	m, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(m), "adhosts_last_run_written 1") {
		t.Errorf("metrics missing written gauge:\n%s", m)
	}
}

func TestApp_Run_NoDataSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "hosts.txt")
	prom := filepath.Join(dir, "adhosts.prom")

	f := staticFetcher{errs: map[string]error{"a": errors.New("down")}}
	a := New(newTestPipeline(f), hosts.NewWriter(), metrics.NewRecorder(), nil)

	summary, err := a.Run(context.Background(), RunConfig{Sources: []string{"a"}, Output: out, MetricsFile: prom})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Written || !summary.NoData {
		t.Errorf("summary = %+v, want no data", summary)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("artifact created on no-data run: %v", err)
	}
	if _, err := os.Stat(prom); err != nil {
		t.Errorf("metrics not exported on no-data run: %v", err)
	}
}

func TestApp_Run_NoDataKeepsPreviousArtifact(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hosts.txt")
	if err := os.WriteFile(out, []byte("0.0.0.0 previous.example.com\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := New(newTestPipeline(staticFetcher{}), hosts.NewWriter(), nil, nil)
	if _, err := a.Run(context.Background(), RunConfig{Output: out}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, _ := os.ReadFile(out)
	if string(data) != "0.0.0.0 previous.example.com\n" {
		t.Errorf("previous artifact modified: %q", data)
	}
}

func TestApp_Run_WriteFailure(t *testing.T) {
	f := staticFetcher{bodies: map[string]string{"a": "||example.com^"}}
	a := New(newTestPipeline(f), failingWriter{}, metrics.NewRecorder(), nil)

	summary, err := a.Run(context.Background(), RunConfig{Sources: []string{"a"}, Output: "unused"})
	if err == nil || !strings.Contains(err.Error(), "write artifact") {
		t.Fatalf("err = %v, want write artifact error", err)
	}
	if summary.Written {
		t.Error("Written = true after failure")
	}
	if summary.Result.UniqueConverted != 1 {
		t.Errorf("UniqueConverted = %d, want 1", summary.Result.UniqueConverted)
	}
}

func TestApp_Run_MetricsExportFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	f := staticFetcher{bodies: map[string]string{"a": "||example.com^"}}
	a := New(newTestPipeline(f), hosts.NewWriter(), metrics.NewRecorder(), nil)

	summary, err := a.Run(context.Background(), RunConfig{
		Sources:     []string{"a"},
		Output:      filepath.Join(dir, "hosts.txt"),
		MetricsFile: filepath.Join(dir, "missing", "adhosts.prom"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Written {
		t.Error("artifact not written")
	}
}
