// Package domain defines the core business entities for Relay.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Contact: A person recovered from pasted text
//   - Deal: An opportunity at a company
//   - Document: A free-text note
//   - LayoutProfile: A pasted-layout variant described as data
//   - CorpusEntry, SearchResult, Cluster: Retrieval outputs
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
