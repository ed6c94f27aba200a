package domain

import "time"

// EmbeddingRecord is the stored vector for one file path.
// Path is the primary key; re-indexing a path overwrites its record.
type EmbeddingRecord struct {
	// Path is the absolute filesystem path.
	Path string

	// Vector is the embedding of the file's representation.
	Vector []float32

	// Modified is the file's modification time (epoch seconds) observed at index time.
	Modified int64

	// Model identifies the embedding model that produced Vector.
	// Empty for records written before model tagging existed.
	Model string
}

// ModifiedTime returns Modified as a time.Time.
func (r EmbeddingRecord) ModifiedTime() time.Time {
	return time.Unix(r.Modified, 0)
}

// StoreStats summarises the contents of the vector store.
type StoreStats struct {
	// Records is the total number of stored embeddings.
	Records int

	// Models counts records per embedding model.
	Models map[string]int

	// Path is the database file location.
	Path string
}
