package domain

import (
	"strings"
	"time"
)

// Well-known intents produced by the command interpreter.
const (
	IntentSearch    = "search"
	IntentOpen      = "open"
	IntentRead      = "read"
	IntentSummarize = "summarize"
	IntentDelete    = "delete"
)

// Intent is the structured form of a natural-language command.
// Empty string fields are absent.
type Intent struct {
	// Intent is the action requested, e.g. "search" or "open".
	Intent string `json:"intent"`

	// Query is the free text to search for.
	Query string `json:"query,omitempty"`

	// FileType is a file type hint such as "pdf" or "image".
	FileType string `json:"file_type,omitempty"`

	// TimeFilter is a time window hint such as "yesterday".
	TimeFilter string `json:"time_filter,omitempty"`

	// FolderHint names a well-known folder such as "downloads".
	FolderHint string `json:"folder_hint,omitempty"`
}

// HasQuery reports whether the intent carries non-blank query text.
func (i Intent) HasQuery() bool {
	return strings.TrimSpace(i.Query) != ""
}

// ScoredPath is one entry of a ranking.
type ScoredPath struct {
	Path  string
	Score float64
}

// Candidate is one of the top-ranked results of a single search.
type Candidate struct {
	// Rank is the 1-based position in the ranking.
	Rank int `json:"rank"`

	// Path is the absolute file path.
	Path string `json:"path"`

	// FileName is the base name of Path.
	FileName string `json:"file_name"`

	// Ext is the lowercase extension without the dot.
	Ext string `json:"ext"`

	// Folder is the name of the parent directory.
	Folder string `json:"folder"`

	// Score is the cosine similarity to the query.
	Score float64 `json:"score"`

	// Stale is set when the file changed or vanished since it was indexed.
	Stale bool `json:"stale,omitempty"`
}

// SearchOutcome is the ordered result of a search.
type SearchOutcome struct {
	// Paths is the final ordering returned to the caller.
	Paths []string `json:"paths"`

	// Candidates are the top-ranked entries in score order.
	Candidates []Candidate `json:"candidates"`

	// Winner is the 1-based rank of the candidate confirmed by the resolver, or 0.
	Winner int `json:"winner,omitempty"`

	// Ambiguous is set when the top two candidates were too close to trust.
	Ambiguous bool `json:"ambiguous,omitempty"`

	// Root is the directory the search was scoped to.
	Root string `json:"root,omitempty"`

	// Query is the normalised query that was embedded.
	Query string `json:"query,omitempty"`
}

// Empty reports whether the outcome holds no paths.
func (o *SearchOutcome) Empty() bool {
	return o == nil || len(o.Paths) == 0
}

// Ordered returns the candidates in the order of Paths, so that position i
// describes Paths[i].
func (o *SearchOutcome) Ordered() []Candidate {
	if o == nil {
		return nil
	}
	byPath := make(map[string]Candidate, len(o.Candidates))
	for _, c := range o.Candidates {
		byPath[c.Path] = c
	}
	ordered := make([]Candidate, 0, len(o.Paths))
	for _, p := range o.Paths {
		if c, ok := byPath[p]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// StaleCount returns how many candidates need re-indexing.
func (o *SearchOutcome) StaleCount() int {
	if o == nil {
		return 0
	}
	n := 0
	for i := range o.Candidates {
		if o.Candidates[i].Stale {
			n++
		}
	}
	return n
}

// TimeFilter restricts files by their local modification date.
type TimeFilter string

// Recognised time filters. Any other value passes every file.
const (
	TimeFilterToday     TimeFilter = "today"
	TimeFilterYesterday TimeFilter = "yesterday"
)

// ParseTimeFilter normalises a free-form hint into a TimeFilter.
func ParseTimeFilter(s string) TimeFilter {
	return TimeFilter(strings.ToLower(strings.TrimSpace(s)))
}

// Matches reports whether a file modified at mod passes the filter, relative to now.
// Dates are compared in now's location.
func (f TimeFilter) Matches(mod, now time.Time) bool {
	switch f {
	case TimeFilterToday:
		return sameDay(mod.In(now.Location()), now)
	case TimeFilterYesterday:
		return sameDay(mod.In(now.Location()), now.AddDate(0, 0, -1))
	default:
		return true
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
