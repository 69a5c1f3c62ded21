// Package menu is the interactive screen machine entered when di runs
// with no command. Every screen is one single-select prompt whose choices
// carry an Action saying where to go next.
package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/ui"
)

// Screen names a menu state.
type Screen string

const (
	Home     Screen = "home"
	Settings Screen = "settings"
	FindHelp Screen = "findHelp"
	Exit     Screen = "exit"
)

// ErrHome is returned by a command that was left through a
// "Take me back home!" choice. The machine answers it with the home screen.
var ErrHome = errors.New(errors.ErrWorkflow, "Back to the home screen", "")

// Action is the effect of a menu choice: Navigate, Open or Invoke.
type Action interface {
	isAction()
}

// Navigate moves to another screen.
type Navigate struct {
	To Screen
}

// Open hands URL to the browser and ends the session.
type Open struct {
	URL string
}

// Invoke runs a command, reports its error if any, then moves to Then.
type Invoke struct {
	Command []string
	Then    Screen
}

func (Navigate) isAction() {}
func (Open) isAction()     {}
func (Invoke) isAction()   {}

// Machine walks the screens until one of them leads to Exit.
type Machine struct {
	Config *config.Store
	Prompt prompt.Prompter
	Log    logger.Logger
	// Exec runs a command the way the router would.
	Exec func(ctx context.Context, tokens []string) error
	// Report shows a failed command without ending the session.
	Report func(command string, err error)
	// Open shows a URL in the browser.
	Open func(url string) error
}

// Run starts at screen and returns once the user leaves. A cancelled
// prompt is returned as prompt.ErrAborted.
func (m *Machine) Run(ctx context.Context, screen Screen) error {
	for screen != Exit {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.Log.Debug("menu: %s", screen)

		title, choices, err := m.render(screen)
		if err != nil {
			return err
		}
		action, err := prompt.Choose(m.Prompt, title, choices)
		if err != nil {
			return err
		}
		screen = m.apply(ctx, action)
	}
	return nil
}

func (m *Machine) render(screen Screen) (string, []prompt.Choice[Action], error) {
	switch screen {
	case Home:
		return m.homeTitle(), []prompt.Choice[Action]{
			{Label: "Install an example", Value: Invoke{Command: []string{"install", "example"}, Then: Exit}},
			{Label: "Settings", Value: Navigate{To: Settings}},
			{Label: "Find some help", Value: Navigate{To: FindHelp}},
			{Label: "Get me out of here!", Value: Navigate{To: Exit}},
		}, nil
	case Settings:
		return "General settings", []prompt.Choice[Action]{
			{Label: "DeployR endpoint", Value: Invoke{Command: []string{"endpoint"}, Then: Home}},
			{Label: "About server", Value: Invoke{Command: []string{"about"}, Then: Home}},
			{Label: "Take me back home!", Value: Navigate{To: Home}},
		}, nil
	case FindHelp:
		return "Here are a few helpful resources.\n\nI will open the link you select in your browser for you",
			[]prompt.Choice[Action]{
				{Label: "Take me to the documentation", Value: Open{URL: m.Config.Homepage()}},
				{Label: "File an issue on GitHub", Value: Open{URL: m.Config.Git().CLI}},
				{Label: "Take me back home!", Value: Navigate{To: Home}},
			}, nil
	}
	return "", nil, fmt.Errorf("unknown menu screen %q", screen)
}

func (m *Machine) homeTitle() string {
	name := ""
	username, endpoint := m.Config.Username(), m.Config.Endpoint()
	if username != "" && endpoint != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
		name = ui.AccentStyle.Render(" " + username + "@" + host)
	}
	return "Welcome to DeployR CLI" + name + "!"
}

func (m *Machine) apply(ctx context.Context, action Action) Screen {
	switch a := action.(type) {
	case Navigate:
		return a.To
	case Open:
		if err := m.Open(a.URL); err != nil {
			m.Log.Warn("Could not open %s: %v", a.URL, err)
		}
		return Exit
	case Invoke:
		err := m.Exec(ctx, a.Command)
		if errors.Is(err, ErrHome) {
			return Home
		}
		if err != nil {
			m.Report(strings.Join(a.Command, " "), err)
		}
		return a.Then
	}
	return Exit
}
