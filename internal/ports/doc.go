// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the pipeline and the outside world. They
// define what the pipeline needs without specifying how those needs are
// fulfilled.
//
// # Port Interfaces
//
//   - [Fetcher]: Retrieves the raw lines of one rule-list source
//   - [RuleConverter]: Turns one raw line into a verdict
//   - [ArtifactWriter]: Persists a run result as a hosts file
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// pkg/fetch, pkg/rule and pkg/hosts provide the concrete implementations, and
// tests substitute in-memory fakes.
package ports
