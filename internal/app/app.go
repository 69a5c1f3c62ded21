// Package app wires the di commands together: configuration, the command
// registry and router, the interactive menu and the install workflow.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/microsoft/deployr-cli/internal/config"
	"github.com/microsoft/deployr-cli/internal/deployr"
	"github.com/microsoft/deployr-cli/internal/dispatch"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/exec"
	"github.com/microsoft/deployr-cli/internal/github"
	"github.com/microsoft/deployr-cli/internal/install"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/menu"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/server"
	"github.com/microsoft/deployr-cli/internal/ui"
	"github.com/microsoft/deployr-cli/internal/users"
)

// Name is the program name used in usage text.
const Name = "di"

// Options configures New. Zero fields get the real implementations.
type Options struct {
	// ConfigPath is the --diconf value. Empty means search for .diconf.
	ConfigPath string
	// UserAgent is sent to DeployR and GitHub.
	UserAgent string
	Out       io.Writer
	Log       logger.Logger
	Prompt    prompt.Prompter
	Client    deployr.Client
	Source    install.Source
	Runner    exec.Runner
	Open      func(url string) error
	// Interactive enables spinners and the download bar.
	Interactive bool
	// Dir is where examples are unpacked. Empty means the working directory.
	Dir string
}

// App is one di process.
type App struct {
	Config *config.Store
	Router *dispatch.Router
	Menu   *menu.Machine

	log         logger.Logger
	out         io.Writer
	displayExit bool

	server  *server.Commands
	users   *users.Commands
	install *install.Workflow
	config  *config.Commands
}

// New loads the configuration and builds every command. A malformed
// config file is returned as *errors.ConfigLoadError.
func New(opts Options) (*App, error) {
	path, err := config.Find(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	store, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	opts = withDefaults(opts, store)

	a := &App{
		Config:      store,
		log:         opts.Log,
		out:         opts.Out,
		displayExit: true,
	}

	a.server = &server.Commands{
		Config:  store,
		Client:  opts.Client,
		Prompt:  opts.Prompt,
		Hooks:   server.DefaultHooks(store, opts.Log, opts.Out),
		Log:     opts.Log,
		Out:     opts.Out,
		Animate: opts.Interactive,
	}
	a.users = &users.Commands{
		Config:  store,
		Client:  opts.Client,
		Prompt:  opts.Prompt,
		Hooks:   users.DefaultHooks(store, opts.Log),
		Log:     opts.Log,
		Out:     opts.Out,
		Animate: opts.Interactive,
		SetEndpoint: func(ctx context.Context) error {
			return a.server.Endpoint(ctx, nil)
		},
	}
	a.install = &install.Workflow{
		Config: store,
		Client: opts.Client,
		Source: opts.Source,
		Prompt: opts.Prompt,
		Runner: opts.Runner,
		Log:    opts.Log,
		Out:    opts.Out,
		Login: func(ctx context.Context) error {
			_, err := a.users.Authenticate(ctx)
			return err
		},
		Open:    opts.Open,
		Dir:     opts.Dir,
		Animate: opts.Interactive,
	}
	a.config = &config.Commands{Store: store, Log: opts.Log, Out: opts.Out}

	a.Router = dispatch.NewRouter(a.registry(), Name,
		dispatch.WithUsage(ui.GeneralUsage()...),
		dispatch.WithLogger(opts.Log),
		dispatch.WithSetup(a.setup),
	)
	a.Menu = &menu.Machine{
		Config: store,
		Prompt: opts.Prompt,
		Log:    opts.Log,
		Exec:   a.goTo,
		Report: a.report,
		Open:   opts.Open,
	}
	return a, nil
}

func withDefaults(opts Options, store *config.Store) Options {
	if opts.UserAgent == "" {
		opts.UserAgent = github.DefaultUserAgent
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = logger.Default()
	}
	if opts.Prompt == nil {
		opts.Prompt = prompt.NewHuh()
	}
	if opts.Client == nil {
		client := deployr.NewHTTPClient(opts.UserAgent)
		client.Log = opts.Log
		opts.Client = client
	}
	if opts.Source == nil {
		gh := github.NewClient()
		gh.UserAgent = opts.UserAgent
		git := store.Git()
		src := &github.Examples{Client: gh, ReposURL: git.Repos, ArchiveURL: git.ExampleURL}
		if opts.Interactive {
			out := opts.Out
			src.Progress = func(name string) github.Progress {
				return ui.NewDownloadProgress(out, name)
			}
		}
		opts.Source = src
	}
	if opts.Runner == nil {
		opts.Runner = exec.NewLocal()
	}
	if opts.Open == nil {
		opts.Open = ui.OpenURL
	}
	return opts
}

// setup runs once, before the first command is dispatched.
func (a *App) setup(ctx context.Context) error {
	a.log.Debug("config: %s", a.Config.Path())
	if endpoint := a.Config.Endpoint(); endpoint != "" {
		a.log.Debug("endpoint: %s", endpoint)
	}
	return nil
}

// Start runs tokens as a command, or the home menu when there are none.
func (a *App) Start(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		err := a.Home(ctx)
		if err != nil {
			a.report(Name, err)
		}
		return err
	}
	return a.Exec(ctx, tokens)
}

// Exec dispatches tokens and reports a failure. A command left through
// "Take me back home!" continues at the home menu.
func (a *App) Exec(ctx context.Context, tokens []string) error {
	a.displayExit = false

	err := a.Router.Dispatch(ctx, tokens)
	if errors.Is(err, menu.ErrHome) {
		return a.Home(ctx)
	}
	if err != nil {
		a.report(strings.Join(tokens, " "), err)
	}
	return err
}

// Home runs the interactive menu. Cancelling a prompt ends it quietly.
func (a *App) Home(ctx context.Context) error {
	err := a.Menu.Run(ctx, menu.Home)
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}

// goTo runs a command chosen from the menu. The menu reports its errors.
func (a *App) goTo(ctx context.Context, tokens []string) error {
	err := a.Router.Dispatch(ctx, tokens)
	a.displayExit = false
	return err
}

func (a *App) report(command string, err error) {
	if errors.Is(err, prompt.ErrAborted) {
		a.log.Debug("%s: %v", command, err)
		return
	}
	ui.ShowError(a.log, command, err)
}

// Exit prints the closing banner if the session stayed in the menu.
func (a *App) Exit() {
	if a.displayExit {
		fmt.Fprintln(a.out, ui.ExitBanner())
	}
}

// Whoami prints only the stored username, for scripts. It needs nothing
// but the config file.
func Whoami(w io.Writer, configPath string) error {
	path, err := config.Find(configPath)
	if err != nil {
		return err
	}
	store, err := config.Load(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, store.Username())
	return err
}
