package shell

import (
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// WriteOutcome prints results in display order, one per line:
//
//	[1] 0.7100 → /home/u/Downloads/fees_2024.pdf  ★
//
// A star marks the resolver's pick and "(needs reindex)" a stale entry.
func WriteOutcome(w io.Writer, outcome *domain.SearchOutcome) {
	if outcome.Empty() {
		fmt.Fprintln(w, "No matches.")
		return
	}
	if outcome.Root != "" {
		fmt.Fprintf(w, "Searching in: %s\n", outcome.Root)
	}
	fmt.Fprintln(w, "Top matches:")
	for i, c := range outcome.Ordered() {
		line := fmt.Sprintf("[%d] %.4f → %s", i+1, c.Score, c.Path)
		if outcome.Winner != 0 && c.Rank == outcome.Winner {
			line += "  ★"
		}
		if c.Stale {
			line += "  (needs reindex)"
		}
		fmt.Fprintln(w, line)
	}
	if n := outcome.StaleCount(); n > 0 {
		fmt.Fprintf(w, "%d result(s) changed since indexing; run 'index' to refresh.\n", n)
	}
}

// WriteReport prints an index report with its failures.
func WriteReport(w io.Writer, report *domain.IndexReport) {
	if report == nil {
		return
	}
	fmt.Fprintf(w, "Indexed %d files, skipped %d (%s).\n",
		report.Indexed, report.Skipped(), report.Duration().Round(time.Millisecond))
	for _, f := range report.Failures {
		fmt.Fprintf(w, "  skipped %s: %v\n", f.Path, f.Err)
	}
}
