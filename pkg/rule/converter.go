package rule

import (
	"regexp"
	"strings"

	"github.com/miekg/dns"

	"github.com/bft-labs/adhosts/internal/domain"
)

const (
	anchorPrefix = "||"
	separator    = '^'
	optionsMark  = '$'
)

var (
	commentRE = regexp.MustCompile(`#.*$`)
	// Labels are alphanumeric with interior hyphens, at most 63 characters;
	// the final label is letters only and at least two long.
	domainRE = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)
)

var defaultConverter = NewConverter()

// Converter turns raw rule lines into verdicts. It holds only compiled,
// read-only validators and is safe for concurrent use.
type Converter struct {
	comment *regexp.Regexp
	domain  *regexp.Regexp
}

// NewConverter returns a Converter sharing the package's compiled validators.
func NewConverter() *Converter {
	return &Converter{comment: commentRE, domain: domainRE}
}

// Convert converts line using the package default Converter.
func Convert(line string) domain.Verdict {
	return defaultConverter.Convert(line)
}

// Convert interprets one raw rule line.
func (c *Converter) Convert(line string) domain.Verdict {
	line = strings.TrimSpace(c.comment.ReplaceAllString(line, ""))
	if line == "" {
		return domain.Rejected(domain.ReasonBlank)
	}

	if !strings.HasPrefix(line, anchorPrefix) || strings.IndexByte(line, separator) < 0 {
		return domain.Rejected(domain.ReasonUnsupported)
	}

	candidate := line[len(anchorPrefix):]
	if i := strings.IndexByte(candidate, separator); i >= 0 {
		candidate = candidate[:i]
	}
	if i := strings.IndexByte(candidate, optionsMark); i >= 0 {
		candidate = candidate[:i]
	}

	if !c.ValidDomain(candidate) {
		return domain.Rejected(domain.ReasonInvalidDomain)
	}
	return domain.Accepted(domain.Entry{Domain: candidate})
}

// ValidDomain reports whether name satisfies the label grammar and fits in a
// DNS message.
func (c *Converter) ValidDomain(name string) bool {
	if !c.domain.MatchString(name) {
		return false
	}
	_, ok := dns.IsDomainName(name)
	return ok
}
