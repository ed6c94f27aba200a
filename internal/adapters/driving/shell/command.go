package shell

import (
	"strconv"
	"strings"
)

// Kind identifies what a shell line asks for.
type Kind int

// Shell command kinds.
const (
	KindEmpty Kind = iota
	KindSearch
	KindOpen
	KindCopy
	KindIndex
	KindHelp
	KindClear
	KindExit
)

// String returns the command keyword.
func (k Kind) String() string {
	switch k {
	case KindSearch:
		return "search"
	case KindOpen:
		return "open"
	case KindCopy:
		return "copy"
	case KindIndex:
		return "index"
	case KindHelp:
		return "help"
	case KindClear:
		return "clear"
	case KindExit:
		return "exit"
	default:
		return "empty"
	}
}

// Command is a parsed shell line.
type Command struct {
	Kind Kind

	// Text is the free-text command for KindSearch.
	Text string

	// N is the 1-based result number for KindOpen and KindCopy.
	N int

	// Paths are explicit targets for KindIndex; empty means the configured roots.
	Paths []string
}

// Parse classifies a line. Keywords are case-insensitive. "open" and "copy"
// only count as keywords when followed by a single result number, so that
// "open the hostel fees pdf" is still treated as free text.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindEmpty}
	}

	fields := strings.Fields(line)
	keyword := strings.ToLower(fields[0])

	switch {
	case len(fields) == 1 && (keyword == "exit" || keyword == "quit"):
		return Command{Kind: KindExit}
	case len(fields) == 1 && keyword == "help":
		return Command{Kind: KindHelp}
	case len(fields) == 1 && keyword == "clear":
		return Command{Kind: KindClear}
	case keyword == "index":
		return Command{Kind: KindIndex, Paths: fields[1:]}
	case len(fields) == 2 && (keyword == "open" || keyword == "copy"):
		if n, err := strconv.Atoi(fields[1]); err == nil {
			kind := KindOpen
			if keyword == "copy" {
				kind = KindCopy
			}
			return Command{Kind: kind, N: n}
		}
	}
	return Command{Kind: KindSearch, Text: line}
}

// HelpText lists the shell commands.
const HelpText = `Commands:
  <anything else>   describe the file you want, e.g. "hostel fees pdf from yesterday"
  open N            open result N with the default application
  copy N            copy the path of result N to the clipboard
  index [PATH...]   re-index the configured roots, or just PATHs
  clear             clear the screen
  help              show this help
  exit, quit        leave the shell`
