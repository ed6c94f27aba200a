// Package launcher hands search results to the desktop environment.
package launcher

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// Ensure Launcher implements the interface.
var _ driven.FileLauncher = (*Launcher)(nil)

const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Launcher opens files with the OS default handler and writes the clipboard.
type Launcher struct {
	goos  string
	start func(cmd *exec.Cmd) error
	copy  func(text string) error
}

// New creates a launcher for the running platform.
func New() *Launcher {
	return &Launcher{
		goos:  runtime.GOOS,
		start: (*exec.Cmd).Start,
		copy:  clipboard.WriteAll,
	}
}

// Launch opens path in the default application without waiting for it.
func (l *Launcher) Launch(path string) error {
	cmd, err := openCommand(l.goos, path)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}
	return nil
}

// CopyText places text on the system clipboard.
func (l *Launcher) CopyText(text string) error {
	if err := l.copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// openCommand returns the command that opens path on goos.
func openCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case osDarwin:
		return exec.Command("open", path), nil
	case osLinux:
		return exec.Command("xdg-open", path), nil
	case osWindows:
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
