// Package cli provides the cobra command tree for meow.
package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dbPath    string
)

// Services wired for the commands. Nil means not configured.
var (
	searchService   driving.SearchService
	interpreter     driving.CommandInterpreter
	indexService    driving.IndexService
	watchService    driving.WatchService
	statusService   driving.StatusService
	settingsService driving.SettingsService
	actionService   driving.ResultActionService
	metricsHandler  http.Handler
	indexRoots      []string
)

// Options are the global flags the composition root needs.
type Options struct {
	// ConfigDir holds config.toml and prompts/. Empty means ~/.meow.
	ConfigDir string

	// DBPath overrides store.path. ":memory:" selects in-memory stores.
	DBPath string
}

// Services is everything the commands need, built by the composition root.
type Services struct {
	Search      driving.SearchService
	Interpreter driving.CommandInterpreter
	Index       driving.IndexService
	Watch       driving.WatchService
	Status      driving.StatusService
	Settings    driving.SettingsService
	Actions     driving.ResultActionService

	// Metrics is served by "mcp --http". Optional.
	Metrics http.Handler

	// Roots are the configured index roots, watched by "watch".
	Roots []string

	// Warnings are printed once before the command runs.
	Warnings []string

	// Close releases stores and clients.
	Close func() error
}

// BootstrapFunc builds the services from the global flags.
type BootstrapFunc func(opts Options) (*Services, error)

var (
	bootstrap BootstrapFunc
	closer    func() error
)

// SetBootstrap sets the function that wires services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetVersion sets the version reported by "meow version".
func SetVersion(v string) {
	version = v
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	searchService = s.Search
	interpreter = s.Interpreter
	indexService = s.Index
	watchService = s.Watch
	statusService = s.Status
	settingsService = s.Settings
	actionService = s.Actions
	metricsHandler = s.Metrics
	indexRoots = s.Roots
	closer = s.Close
}

var rootCmd = &cobra.Command{
	Use:   "meow",
	Short: "Find local files by describing them",
	Long: `meow is a local semantic file search.

It indexes the files under your configured folders as vector embeddings and
ranks them against what you type, e.g. "hostel fees pdf from yesterday".
When the two best matches are too close to call, a language model can be
asked to break the tie.

Run without a command to start the interactive shell.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runShell,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.meow)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", `vector database file, or ":memory:"`)
}

// setup applies global flags and wires services on first use.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || searchService != nil || cmd == versionCmd {
		return nil
	}

	s, err := bootstrap(Options{ConfigDir: configDir, DBPath: dbPath})
	if err != nil {
		return fmt.Errorf("starting meow: %w", err)
	}
	SetServices(s)
	for _, w := range s.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return nil
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if closer != nil {
		if cerr := closer(); cerr != nil {
			logger.Warn("closing services: %v", cerr)
		}
	}
	return err
}

// errNotConfigured reports a command whose service was not wired.
func errNotConfigured(what string) error {
	return fmt.Errorf("%s not configured", what)
}

// Main runs the CLI and exits the process on failure.
func Main() {
	// cmd.Print* falls back to stderr when no output is set
	rootCmd.SetOut(os.Stdout)
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
