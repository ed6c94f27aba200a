package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// ErrNoResults is returned by open and copy before any search has produced results.
var ErrNoResults = errors.New("no results yet, search for something first")

// Ports aggregates the driving ports a session needs.
// Actions and Index are optional.
type Ports struct {
	Interpreter driving.CommandInterpreter
	Search      driving.SearchService
	Actions     driving.ResultActionService
	Index       driving.IndexService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return errors.New("shell: search service is required")
	}
	if p.Interpreter == nil {
		return errors.New("shell: command interpreter is required")
	}
	return nil
}

// Result is what one executed line produced.
type Result struct {
	Command Command

	// Intent is the interpreted form of a free-text command.
	Intent *domain.Intent

	// Outcome is set after a search.
	Outcome *domain.SearchOutcome

	// Report is set after an index run.
	Report *domain.IndexReport

	// Message is a one-line note for the user.
	Message string
}

// Session holds the state of one interactive session: the last results,
// so that "open N" refers to what the user just saw.
type Session struct {
	ports *Ports
	last  *domain.SearchOutcome
}

// NewSession creates a session over the given ports.
func NewSession(ports *Ports) (*Session, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	return &Session{ports: ports}, nil
}

// Last returns the most recent search outcome, or nil.
func (s *Session) Last() *domain.SearchOutcome {
	return s.last
}

// Execute parses and runs one line.
func (s *Session) Execute(ctx context.Context, line string) (*Result, error) {
	return s.Run(ctx, Parse(line))
}

// Run executes a parsed command. Errors are user-facing; the session stays usable.
func (s *Session) Run(ctx context.Context, cmd Command) (*Result, error) {
	res := &Result{Command: cmd}

	switch cmd.Kind {
	case KindEmpty, KindExit:
		return res, nil

	case KindHelp:
		res.Message = HelpText
		return res, nil

	case KindClear:
		s.last = nil
		return res, nil

	case KindOpen, KindCopy:
		path, err := s.pathAt(cmd.N)
		if err != nil {
			return res, err
		}
		return res, s.act(ctx, cmd.Kind, path, res)

	case KindIndex:
		return res, s.index(ctx, cmd.Paths, res)

	case KindSearch:
		return res, s.search(ctx, cmd.Text, res)
	}
	return res, fmt.Errorf("%w: unknown command", domain.ErrInvalidInput)
}

func (s *Session) search(ctx context.Context, text string, res *Result) error {
	intent := s.ports.Interpreter.Interpret(ctx, text)
	res.Intent = &intent
	logger.Debug("Intent: %+v", intent)

	switch intent.Intent {
	case domain.IntentSearch, domain.IntentOpen:
	default:
		res.Message = fmt.Sprintf("%q is not supported yet, try describing a file to find", intent.Intent)
		return nil
	}

	outcome, err := s.ports.Search.Search(ctx, intent)
	if err != nil {
		return err
	}
	s.last = outcome
	res.Outcome = outcome

	if outcome.Empty() {
		res.Message = "No matches."
		return nil
	}
	if intent.Intent == domain.IntentOpen {
		return s.act(ctx, KindOpen, outcome.Paths[0], res)
	}
	return nil
}

func (s *Session) act(ctx context.Context, kind Kind, path string, res *Result) error {
	if s.ports.Actions == nil {
		return fmt.Errorf("%s is not available", kind)
	}
	if kind == KindCopy {
		if err := s.ports.Actions.CopyPath(ctx, path); err != nil {
			return err
		}
		res.Message = "Copied " + path
		return nil
	}
	if err := s.ports.Actions.Open(ctx, path); err != nil {
		return err
	}
	res.Message = "Opening " + path
	return nil
}

func (s *Session) index(ctx context.Context, paths []string, res *Result) error {
	if s.ports.Index == nil {
		return errors.New("indexing is not available")
	}
	var (
		report *domain.IndexReport
		err    error
	)
	if len(paths) > 0 {
		report, err = s.ports.Index.IndexPaths(ctx, paths)
	} else {
		report, err = s.ports.Index.Run(ctx)
	}
	res.Report = report
	if err != nil {
		return err
	}
	res.Message = fmt.Sprintf("Indexed %d files, skipped %d.", report.Indexed, report.Skipped())
	return nil
}

// pathAt returns the path shown at 1-based position n of the last results.
func (s *Session) pathAt(n int) (string, error) {
	if s.last.Empty() {
		return "", ErrNoResults
	}
	if n < 1 || n > len(s.last.Paths) {
		return "", fmt.Errorf("%w: choose a result between 1 and %d", domain.ErrInvalidInput, len(s.last.Paths))
	}
	return s.last.Paths[n-1], nil
}
