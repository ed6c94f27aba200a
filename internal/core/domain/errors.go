package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbedding indicates the embedding backend failed to produce a vector.
	// Network failures, undecodable responses and empty vectors all wrap it.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStorage indicates the vector store could not be read or written.
	ErrStorage = errors.New("storage failed")

	// ErrDecision indicates the decision backend gave no usable answer.
	// It never aborts a search; the resolver degrades to "no confident pick".
	ErrDecision = errors.New("decision failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Ambiguity resolution and natural-language interpretation are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Neither indexing nor searching can run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrNoResults indicates the last search produced nothing to act on.
	ErrNoResults = errors.New("no results")
)
