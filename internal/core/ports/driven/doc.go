// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Turns file representations and queries into vectors
//   - VectorStore: Persists one embedding per file path (SQLite)
//   - ConfigStore: Application configuration (TOML)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Ambiguity resolution and command interpretation
//   - PromptStore: Custom prompt templates; built-in defaults otherwise
//   - IndexRunStore: Indexing run history
//   - SearchMetrics: Prometheus instrumentation
//   - FileLauncher: Opens results in the default application
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
