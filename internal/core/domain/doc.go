// Package domain defines the core business entities for Meow.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - EmbeddingRecord: A stored vector for one file path
//   - Intent: A structured command produced by the interpreter
//   - Candidate: One of the top-ranked results of a search
//   - SearchOutcome: The ordered result of a search
//   - IndexReport: The outcome of an indexing run
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
