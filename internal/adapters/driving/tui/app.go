package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/views/console"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// session keeps the last results between commands.
	session *shell.Session

	// ctx is the context for cancellation.
	ctx context.Context

	styles  *styles.Styles
	console *console.View

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	session, err := shell.NewSession(ports.shellPorts())
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:   ports,
		session: session,
		ctx:     context.Background(),
		styles:  s,
		console: console.NewView(s, nil, session),
	}, nil
}

// WithContext sets the context for the app and the commands it runs.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.console.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("meow - local file search"),
		a.console.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.console.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.Quit:
		return a, tea.Quit
	}

	a.console, cmd = a.console.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.console.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Session returns the shell session backing the app.
func (a *App) Session() *shell.Session {
	return a.session
}

// Console returns the console view.
func (a *App) Console() *console.View {
	return a.console
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.console.SetDimensions(width, height)
}
