package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui"
)

var shellPlain bool

// isTerminal reports whether both stdin and stdout are terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell. This is also what plain "meow" does.

Type what you are looking for and meow lists the closest files. Then:
  open N     open result N
  copy N     copy the path of result N
  index      re-index the configured folders
  help       list commands
  exit       leave

On a terminal the shell is a full-screen UI (ctrl+o opens the selection,
ctrl+y copies it, ctrl+p/ctrl+n walk history). With piped input, or with
--plain, commands are read line by line.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellPlain, "plain", false, "use the line-based shell even on a terminal")
	rootCmd.Flags().BoolVar(&shellPlain, "plain", false, "use the line-based shell even on a terminal")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errNotConfigured("search service")
	}

	if shellPlain || !isTerminal() {
		session, err := shell.NewSession(&shell.Ports{
			Interpreter: interpreter,
			Search:      searchService,
			Actions:     actionService,
			Index:       indexService,
		})
		if err != nil {
			return err
		}
		return shell.RunREPL(cmd.Context(), session, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return runTUI(cmd)
}

func runTUI(cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panicked: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(interpreter, searchService, actionService, indexService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
