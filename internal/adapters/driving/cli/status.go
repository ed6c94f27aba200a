package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index statistics and the last run",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if statusService == nil {
		return errNotConfigured("status service")
	}

	st, err := statusService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	cmd.Println("[Store]")
	if st.Store.Path != "" {
		cmd.Printf("  Path: %s\n", st.Store.Path)
	}
	cmd.Printf("  Records: %d\n", st.Store.Records)
	models := make([]string, 0, len(st.Store.Models))
	for m := range st.Store.Models {
		models = append(models, m)
	}
	sort.Strings(models)
	for _, m := range models {
		name := m
		if name == "" {
			name = "(untagged)"
		}
		cmd.Printf("    %s: %d\n", name, st.Store.Models[m])
	}
	cmd.Println()

	cmd.Println("[Models]")
	embedding := st.EmbeddingModel
	if embedding == "" {
		embedding = "(not configured)"
	}
	cmd.Printf("  Embedding: %s (%d searchable records)\n", embedding, st.CurrentModelRecords)
	llm := st.LLMModel
	if llm == "" {
		llm = "(disabled)"
	}
	cmd.Printf("  Decision: %s\n", llm)
	cmd.Println()

	cmd.Println("[Last run]")
	if st.LastRun == nil {
		cmd.Println("  never, run 'meow index'")
		return nil
	}
	cmd.Printf("  Finished: %s\n", st.LastRun.FinishedAt.Local().Format(time.DateTime))
	cmd.Printf("  Indexed: %d, skipped: %d\n", st.LastRun.Indexed, st.LastRun.Skipped)
	cmd.Printf("  Roots: %s\n", strings.Join(st.LastRun.Roots, ", "))
	return nil
}
