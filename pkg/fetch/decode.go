package fetch

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bft-labs/adhosts/internal/domain"
)

// Decode converts a response body to text. A leading byte-order mark selects
// the matching Unicode decoding and is removed; otherwise the body is read as
// UTF-8. Undecodable sequences become U+FFFD instead of failing.
func Decode(body []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return string(out)
}

// SplitLines splits text on line boundaries, trims every line and drops the
// empty ones. Each remaining line is tagged with source.
func SplitLines(text, source string) []domain.RawRule {
	lines := strings.Split(text, "\n")
	rules := make([]domain.RawRule, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rules = append(rules, domain.RawRule{Text: line, Source: source})
	}
	return rules
}
