package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openCopy bool

var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open a file with its default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	openCmd.Flags().BoolVarP(&openCopy, "copy", "c", false, "copy the path to the clipboard instead")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if actionService == nil {
		return errNotConfigured("result actions")
	}

	path := args[0]
	if openCopy {
		if err := actionService.CopyPath(cmd.Context(), path); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		cmd.Printf("Copied %s\n", path)
		return nil
	}
	if err := actionService.Open(cmd.Context(), path); err != nil {
		return fmt.Errorf("open failed: %w", err)
	}
	cmd.Printf("Opening %s\n", path)
	return nil
}
