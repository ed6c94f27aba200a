package domain

// Status describes the state of the index.
type Status struct {
	// Store summarises stored records.
	Store StoreStats

	// LastRun is the most recent indexing run, or nil if none was recorded.
	LastRun *IndexRun

	// EmbeddingModel is the active embedding model.
	EmbeddingModel string

	// LLMModel is the active decision model, or "" when disabled.
	LLMModel string

	// CurrentModelRecords counts records comparable with EmbeddingModel.
	CurrentModelRecords int
}
