package driven

import "time"

// SearchMetrics observes search and indexing activity.
// A nil SearchMetrics disables recording.
type SearchMetrics interface {
	// ObserveEmbedding records one embedding request and whether it failed.
	ObserveEmbedding(err error)

	// ObserveSearch records a finished search.
	ObserveSearch(d time.Duration, results int, ambiguous bool, err error)

	// ObserveDecision records a resolver outcome: "picked", "rejected" or "error".
	ObserveDecision(outcome string)

	// ObserveIndexed records a file embedded during indexing.
	ObserveIndexed()

	// ObserveIndexFailure records a file skipped during indexing.
	ObserveIndexFailure()
}
