// Package sqlite provides the SQLite-backed vector store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single database file holds:
//
//   - embeddings: one row per absolute file path (vector, modified, model)
//   - index_runs: one row per finished indexing run
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Vector Encoding
//
// Vectors are stored as little-endian float32 blobs, so they round-trip exactly.
//
// # Data Location
//
// By default, the database is stored at ~/.meow/data/meow_vectors.db
//
// # Thread Safety
//
// Meow assumes a single writer. SQLite in WAL mode with a busy timeout keeps a
// concurrent reader (for example the MCP server) from failing outright.
package sqlite
