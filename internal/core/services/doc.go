// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval pipeline lives here:
//
//   - BuildRepresentation describes a file for embedding
//   - NormalizeQuery strips filler words from a query
//   - Rank scores stored vectors by cosine similarity
//   - AmbiguityResolver breaks near-ties with a second model
//   - SearchService composes the above into one search call
//   - IndexService walks roots and stores one vector per file
package services
