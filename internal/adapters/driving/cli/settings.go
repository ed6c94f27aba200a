package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys use dot notation, e.g. embedding.model or resolver.min_gap.
Run 'meow settings keys' for the full list.`,
	RunE: runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY [VALUE]",
	Short: "Set a key",
	Long: `Set a key in config.toml. Lists are comma separated.

For api_key keys the value may be omitted; it is then read from the
terminal without echo.`,
	Example: `  meow settings set embedding.provider openai
  meow settings set index.roots ~/Downloads,~/Documents
  meow settings set llm.api_key`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured AI providers respond",
	Args:  cobra.NoArgs,
	RunE:  runSettingsCheck,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsCheckCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	section := ""
	for _, key := range settingsService.Keys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", key, err)
		}
		group, name, _ := strings.Cut(key, ".")
		if group != section {
			if section != "" {
				cmd.Println()
			}
			cmd.Printf("[%s]\n", group)
			section = group
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s = %s\n", name, value)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}
	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case strings.HasSuffix(key, ".api_key"):
		cmd.Print("Enter API key: ")
		value = readPassword(cmd.InOrStdin())
		cmd.Println()
		if value == "" {
			return errors.New("API key is required")
		}
	default:
		return fmt.Errorf("missing value for %s", key)
	}

	if err := settingsService.SetValue(key, value); err != nil {
		return err
	}
	shown, err := settingsService.GetValue(key)
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, shown)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	var failed bool
	cmd.Print("Embedding provider... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	cmd.Print("LLM provider... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		failed = true
	} else {
		cmd.Println("OK")
	}

	if failed {
		return errors.New("configuration check failed")
	}
	return nil
}

// readPassword reads a secret without echo when in is the terminal.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line)
}
