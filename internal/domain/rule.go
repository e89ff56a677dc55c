package domain

import "time"

// SinkholeAddress is the address every converted domain is mapped to.
const SinkholeAddress = "0.0.0.0"

// RawRule is one line of a rule list as received from a source.
// Source is kept for statistics only; deduplication keys on Text alone.
type RawRule struct {
	Text   string
	Source string
}

// Entry is a validated hosts-file entry.
type Entry struct {
	Domain string
}

// String renders the entry as a hosts-file line without the trailing newline.
func (e Entry) String() string {
	return SinkholeAddress + " " + e.Domain
}

// RejectReason classifies why a rule produced no entry.
type RejectReason int

const (
	// ReasonNone is the zero value carried by accepted verdicts.
	ReasonNone RejectReason = iota
	// ReasonBlank covers empty and comment-only lines.
	ReasonBlank
	// ReasonUnsupported covers every rule shape other than "||domain^".
	ReasonUnsupported
	// ReasonInvalidDomain covers "||...^" rules whose domain fails validation.
	ReasonInvalidDomain
)

// String returns the reason name used in log fields.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBlank:
		return "blank"
	case ReasonUnsupported:
		return "unsupported"
	case ReasonInvalidDomain:
		return "invalid_domain"
	default:
		return "unknown"
	}
}

// Verdict is the result of converting a single rule: either an accepted Entry
// or a rejection with a reason. Conversion never fails with an error.
type Verdict struct {
	entry    Entry
	accepted bool
	reason   RejectReason
}

// Accepted builds a verdict carrying e.
func Accepted(e Entry) Verdict {
	return Verdict{entry: e, accepted: true}
}

// Rejected builds a verdict carrying no entry.
func Rejected(reason RejectReason) Verdict {
	return Verdict{reason: reason}
}

// Entry returns the converted entry and whether the rule was accepted.
func (v Verdict) Entry() (Entry, bool) {
	return v.entry, v.accepted
}

// IsAccepted reports whether the rule produced an entry.
func (v Verdict) IsAccepted() bool { return v.accepted }

// Reason returns why the rule was rejected, or ReasonNone when accepted.
func (v Verdict) Reason() RejectReason { return v.reason }

// SourceStat records what one source contributed to a run.
type SourceStat struct {
	Source string
	// Fetched is the number of non-empty lines received; zero on failure.
	Fetched int
	// Converted is the number of output entries first supplied by this source.
	Converted int
	// Err is the fetch failure, nil on success.
	Err      error
	Duration time.Duration
}

// OK reports whether the source was fetched successfully.
func (s SourceStat) OK() bool { return s.Err == nil }

// RunResult is the aggregate produced by one pipeline run.
type RunResult struct {
	// Sources holds one stat per requested source, in request order.
	Sources         []SourceStat
	UniqueRaw       int
	UniqueConverted int
	// Entries is the output sequence in first-occurrence order.
	Entries []Entry
}

// Empty reports whether the run produced nothing worth writing.
func (r RunResult) Empty() bool {
	return len(r.Entries) == 0
}

// Failed returns the number of sources that could not be fetched.
func (r RunResult) Failed() int {
	n := 0
	for _, s := range r.Sources {
		if !s.OK() {
			n++
		}
	}
	return n
}
