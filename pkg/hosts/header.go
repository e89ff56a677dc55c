package hosts

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/bft-labs/adhosts/internal/domain"
)

// Banner is the descriptive block at the top of every artifact.
type Banner struct {
	Title    string
	Homepage string
	License  string
}

// DefaultBanner returns the banner the project has always published.
func DefaultBanner() Banner {
	return Banner{
		Title:    "This filter compiled from trusted, verified sources and optimized for compatibility with DNS-level ad blocking by merging and simplifying multiple filters",
		Homepage: "https://github.com/eugenescodes/adblock2mikrotik",
		License:  "https://github.com/eugenescodes/adblock2mikrotik/blob/main/LICENSE",
	}
}

// WriteHeader renders the header for result, stamped with generated.
func WriteHeader(w io.Writer, b Banner, result domain.RunResult, generated time.Time) error {
	ew := &errWriter{w: w}

	ew.printf("# Title: %s\n", headerText(b.Title))
	ew.printf("#\n")
	ew.printf("# Homepage: %s\n", headerText(b.Homepage))
	ew.printf("# License: %s\n", headerText(b.License))
	ew.printf("#\n")
	ew.printf("# Last modified: %s\n", generated.Format(time.RFC3339))
	ew.printf("#\n")
	ew.printf("# Convert to format: %s domain.tld\n", domain.SinkholeAddress)

	for _, s := range result.Sources {
		ew.printf("#\n# Source: %s\n", headerText(s.Source))
		if s.OK() {
			ew.printf("# Successfully fetched %d domains\n", s.Fetched)
		} else {
			ew.printf("# Failed to fetch, 0 domains\n")
		}
	}

	ew.printf("#\n# Total unique raw rules: %d\n", result.UniqueRaw)
	ew.printf("# Total unique converted rules: %d\n", result.UniqueConverted)
	ew.printf("#\n")
	return ew.err
}

// headerText keeps a value on one ASCII comment line: control characters
// become spaces and other non-ASCII runes are written as \uXXXX escapes.
func headerText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			b.WriteByte(' ')
		case r > unicode.MaxASCII:
			q := strconv.QuoteRuneToASCII(r)
			b.WriteString(q[1 : len(q)-1])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
