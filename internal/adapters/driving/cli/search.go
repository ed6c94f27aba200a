package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/core/domain"
)

var (
	searchFolder    string
	searchTime      string
	searchType      string
	searchJSON      bool
	searchInterpret bool
)

var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Search indexed files",
	Long: `Rank indexed files by semantic similarity to QUERY.

--folder scopes the search to a well-known folder (downloads, pictures,
documents, desktop) and --time to files modified today or yesterday.
With --interpret the query is read as a natural-language command and the
hints are extracted from it; explicit flags still win.`,
	Example: `  meow search hostel fees receipt
  meow search --folder downloads --time yesterday invoice
  meow search --interpret "the cv pdf I downloaded today"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchFolder, "folder", "", "folder hint, e.g. downloads")
	searchCmd.Flags().StringVar(&searchTime, "time", "", "time window: today or yesterday")
	searchCmd.Flags().StringVar(&searchType, "type", "", "file type hint, e.g. pdf")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the outcome as JSON")
	searchCmd.Flags().BoolVar(&searchInterpret, "interpret", false, "interpret QUERY as a natural-language command")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search service")
	}

	query := strings.Join(args, " ")
	intent := domain.Intent{Intent: domain.IntentSearch, Query: query}
	if searchInterpret && interpreter != nil {
		intent = interpreter.Interpret(cmd.Context(), query)
		intent.Intent = domain.IntentSearch
		if !intent.HasQuery() {
			intent.Query = query
		}
	}
	if searchFolder != "" {
		intent.FolderHint = searchFolder
	}
	if searchTime != "" {
		intent.TimeFilter = searchTime
	}
	if searchType != "" {
		intent.FileType = searchType
	}

	outcome, err := searchService.Search(cmd.Context(), intent)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, outcome)
	}
	shell.WriteOutcome(cmd.OutOrStdout(), outcome)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, outcome *domain.SearchOutcome) error {
	if outcome == nil {
		outcome = &domain.SearchOutcome{}
	}
	if outcome.Paths == nil {
		outcome.Paths = []string{}
	}
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
