package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index files as they change",
	Long: `Watch the configured roots and re-index files when they are created or
written. Deleted files are left in the index and show up as "needs reindex"
in results. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errNotConfigured("watch service")
	}
	if len(indexRoots) == 0 {
		return errors.New("no index roots configured, see 'meow settings set index.roots'")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %d folder(s). Press Ctrl+C to stop.\n", len(indexRoots))
	err := watchService.Watch(ctx, indexRoots)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
