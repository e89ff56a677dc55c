// Package domain contains the core entities and value objects for adhosts.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only the types the converter, pipeline and writer exchange.
//
// # Entities
//
//   - [RawRule]: A single line as received from a source, before interpretation
//   - [Entry]: A validated sinkhole entry rendered as "0.0.0.0 <domain>"
//   - [Verdict]: The two-case outcome of converting one rule (accepted or rejected)
//   - [SourceStat]: Per-source provenance recorded once the fetch completes
//   - [RunResult]: The aggregate handed from the pipeline to the writer
//
// # Design Principles
//
// Domain values are:
//   - Immutable after construction
//   - Free of infrastructure dependencies
//   - Safe to pass between goroutines without synchronization
package domain
