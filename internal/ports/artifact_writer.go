package ports

import "github.com/bft-labs/adhosts/internal/domain"

// ArtifactWriter persists a run result at path. A returned error means no
// complete artifact was produced; *hosts.Writer satisfies this interface.
type ArtifactWriter interface {
	Write(result domain.RunResult, path string) error
}
