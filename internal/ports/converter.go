package ports

import "github.com/bft-labs/adhosts/internal/domain"

// RuleConverter interprets one raw rule line. Implementations are pure and
// never fail; *rule.Converter satisfies this interface.
type RuleConverter interface {
	Convert(line string) domain.Verdict
}
