package hosts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bft-labs/adhosts/internal/domain"
)

// DefaultPath is the artifact location used when none is configured.
const DefaultPath = "hosts.txt"

const filePerm = 0o644

// Writer serializes run results to disk.
type Writer struct {
	banner Banner
	now    func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithBanner overrides the default banner.
func WithBanner(b Banner) Option {
	return func(w *Writer) { w.banner = b }
}

// WithClock sets the time source used for the "Last modified" stamp.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a Writer with the default banner and the wall clock.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{banner: DefaultBanner(), now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Render writes the complete artifact for result to out.
func (w *Writer) Render(out io.Writer, result domain.RunResult) error {
	bw := bufio.NewWriter(out)
	if err := WriteHeader(bw, w.banner, result, w.now().UTC()); err != nil {
		return err
	}
	for _, e := range result.Entries {
		if _, err := bw.WriteString(e.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write atomically replaces the file at path with the artifact for result.
func (w *Writer) Write(result domain.RunResult, path string) (err error) {
	if path == "" {
		path = DefaultPath
	}
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = w.Render(tmp, result); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	// Atomic rename
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
