package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
)

var indexCmd = &cobra.Command{
	Use:   "index [PATH...]",
	Short: "Index the configured folders, or the given paths",
	Long: `Embed every regular file under the configured roots (index.roots) and
store the vectors. Files that fail are skipped and listed; the run still
succeeds. Given PATHs, only those files or directories are re-indexed.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil {
		return errNotConfigured("index service")
	}

	if len(args) > 0 {
		cmd.Printf("Indexing %d path(s)...\n", len(args))
		report, err := indexService.IndexPaths(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("indexing failed: %w", err)
		}
		shell.WriteReport(cmd.OutOrStdout(), report)
		return nil
	}

	cmd.Println("Indexing configured roots...")
	report, err := indexService.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	shell.WriteReport(cmd.OutOrStdout(), report)
	return nil
}
