package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"what the file is about, in plain words"`
	FolderHint string `json:"folder_hint,omitempty" jsonschema:"well-known folder to search, e.g. downloads or pictures"`
	TimeFilter string `json:"time_filter,omitempty" jsonschema:"today or yesterday"`
	FileType   string `json:"file_type,omitempty" jsonschema:"file type hint such as pdf"`
	Interpret  bool   `json:"interpret,omitempty" jsonschema:"treat query as a natural-language command and extract hints from it"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Root      string         `json:"root,omitempty"`
	Results   []SearchResult `json:"results"`
	Count     int            `json:"count"`
	Ambiguous bool           `json:"ambiguous,omitempty"`
}

// SearchResult represents a single search result in display order.
type SearchResult struct {
	Path   string  `json:"path"`
	Score  float64 `json:"score"`
	Winner bool    `json:"winner,omitempty"`
	Stale  bool    `json:"stale,omitempty"`
}

// IndexInput is the input schema for the index tool.
type IndexInput struct {
	Paths []string `json:"paths,omitempty" jsonschema:"files or directories to re-index; empty re-indexes every configured root"`
}

// IndexOutput is the output schema for the index tool.
type IndexOutput struct {
	RunID    string         `json:"run_id,omitempty"`
	Indexed  int            `json:"indexed"`
	Skipped  int            `json:"skipped"`
	Duration string         `json:"duration"`
	Failures []IndexFailure `json:"failures,omitempty"`
}

// IndexFailure names one file that could not be indexed.
type IndexFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find local files by describing them; returns ranked paths",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index",
		Description: "Re-index the configured folders, or the given paths",
	}, s.handleIndex)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	intent := domain.Intent{
		Intent:     domain.IntentSearch,
		Query:      strings.TrimSpace(input.Query),
		FolderHint: input.FolderHint,
		TimeFilter: input.TimeFilter,
		FileType:   input.FileType,
	}
	if input.Interpret && s.ports.Interpreter != nil {
		intent = mergeHints(s.ports.Interpreter.Interpret(ctx, input.Query), intent)
	}

	outcome, err := s.ports.Search.Search(ctx, intent)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(outcome), nil
}

// mergeHints lets explicit hints override the interpreted ones.
func mergeHints(interpreted, explicit domain.Intent) domain.Intent {
	interpreted.Intent = domain.IntentSearch
	if explicit.FolderHint != "" {
		interpreted.FolderHint = explicit.FolderHint
	}
	if explicit.TimeFilter != "" {
		interpreted.TimeFilter = explicit.TimeFilter
	}
	if explicit.FileType != "" {
		interpreted.FileType = explicit.FileType
	}
	if !interpreted.HasQuery() {
		interpreted.Query = explicit.Query
	}
	return interpreted
}

func toSearchOutput(outcome *domain.SearchOutcome) SearchOutput {
	out := SearchOutput{Results: []SearchResult{}}
	if outcome == nil {
		return out
	}
	out.Root = outcome.Root
	out.Ambiguous = outcome.Ambiguous
	for _, c := range outcome.Ordered() {
		out.Results = append(out.Results, SearchResult{
			Path:   c.Path,
			Score:  c.Score,
			Winner: outcome.Winner != 0 && c.Rank == outcome.Winner,
			Stale:  c.Stale,
		})
	}
	out.Count = len(out.Results)
	return out
}

// handleIndex handles the index tool invocation.
func (s *Server) handleIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	if s.ports.Index == nil {
		return nil, IndexOutput{}, ErrIndexUnavailable
	}

	var (
		report *domain.IndexReport
		err    error
	)
	if len(input.Paths) > 0 {
		report, err = s.ports.Index.IndexPaths(ctx, input.Paths)
	} else {
		report, err = s.ports.Index.Run(ctx)
	}
	if err != nil {
		return nil, IndexOutput{}, err
	}
	return nil, toIndexOutput(report), nil
}

func toIndexOutput(report *domain.IndexReport) IndexOutput {
	out := IndexOutput{
		RunID:    report.RunID,
		Indexed:  report.Indexed,
		Skipped:  report.Skipped(),
		Duration: report.Duration().Round(time.Millisecond).String(),
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, IndexFailure{Path: f.Path, Error: f.Err.Error()})
	}
	return out
}
