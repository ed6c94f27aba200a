package domain

import "time"

// IndexFailure records a file that could not be indexed.
type IndexFailure struct {
	Path string
	Err  error
}

// IndexReport summarises one indexing run.
type IndexReport struct {
	// RunID identifies the run in the index_runs table.
	RunID string

	// Roots are the directories or files that were walked.
	Roots []string

	// Indexed is the number of files embedded and stored.
	Indexed int

	// Failures lists the files that were skipped.
	Failures []IndexFailure

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Skipped returns the number of files that failed.
func (r *IndexReport) Skipped() int {
	return len(r.Failures)
}

// Duration returns how long the run took.
func (r *IndexReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// IndexRun is the persisted summary of an IndexReport.
type IndexRun struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Indexed    int
	Skipped    int
	Roots      []string
}

// ChangeType classifies a filesystem change.
type ChangeType string

// Filesystem change types.
const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// FileChange is a single filesystem event under a watched root.
type FileChange struct {
	Path string
	Type ChangeType
}
