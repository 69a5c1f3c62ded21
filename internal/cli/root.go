package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/microsoft/deployr-cli/internal/app"
	"github.com/microsoft/deployr-cli/internal/dispatch"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/ui"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitAborted = 130
)

// rawWhoami is answered straight from the config file.
const rawWhoami = "whoami"

// NewRootCmd creates the di command. Zero fields of opts get the real
// collaborators; --diconf overrides opts.ConfigPath.
func NewRootCmd(opts app.Options) *cobra.Command {
	var configPath string
	options := func() app.Options {
		o := opts
		if configPath != "" {
			o.ConfigPath = configPath
		}
		return o
	}

	root := &cobra.Command{
		Use:     app.Name + " [command]",
		Short:   "DeployR command line tool",
		Long:    "Install and run DeployR examples, manage your server endpoint and session.\nRun `di` without a command for the interactive home screen.",
		Version: formatVersion(version),
		Args:    cobra.ArbitraryArgs,
		// Commands report their own failures.
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeTokens(options),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == rawWhoami {
				return app.Whoami(cmd.OutOrStdout(), options().ConfigPath)
			}

			a, err := app.New(options())
			if err != nil {
				return err
			}
			defer a.Exit()

			return exitStatus(a.Start(cmd.Context(), args))
		},
	}

	root.SetVersionTemplate(versionTemplate())
	root.PersistentFlags().StringVarP(&configPath, "diconf", "j", "", "specify file to load configuration from")
	root.PersistentFlags().BoolP("help", "h", false, "prints cli help and exit")
	root.Flags().BoolP("version", "v", false, "prints DeployR CLI version and exit")

	// help and --help resolve against the command registry, not cobra's tree.
	routeHelp := func(cmd *cobra.Command, args []string) error {
		a, err := app.New(options())
		if err != nil {
			return err
		}
		return exitStatus(a.Exec(cmd.Context(), append([]string{dispatch.HelpToken}, args...)))
	}

	cobraHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			cobraHelp(cmd, args)
			return
		}
		if err := routeHelp(cmd, cmd.Flags().Args()); err != nil {
			handleError(err, cmd.ErrOrStderr(), opts.Log)
		}
	})
	root.SetHelpCommand(&cobra.Command{
		Use:    dispatch.HelpToken + " [command]",
		Short:  "Show usage for a command",
		Hidden: true,
		Args:   cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return routeHelp(cmd, args)
		},
	})

	root.AddCommand(newCompletionCmd(root))
	return root
}

// exitStatus turns an error the app already reported into a bare exit code.
func exitStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, prompt.ErrAborted):
		return errors.NewExitError(exitAborted)
	default:
		return errors.NewExitError(exitFailure)
	}
}

// handleError prints what has not been printed yet and returns the
// process exit code.
func handleError(err error, w io.Writer, log logger.Logger) int {
	if err == nil {
		return exitSuccess
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	var loadErr *errors.ConfigLoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(w, "Error parsing %s\n", ui.AccentStyle.Render(loadErr.Path))
		fmt.Fprintln(w, loadErr.Cause)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Please check the .diconf file and try again")
		fmt.Fprintln(w)
		return exitFailure
	}

	if log == nil {
		log = logger.Default()
	}
	ui.ShowError(log, app.Name, err)
	return exitFailure
}

// Execute runs di with os.Args and exits with its status.
func Execute() {
	ui.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root := NewRootCmd(app.Options{Interactive: ui.IsTerminal(os.Stdout)})
	err := root.ExecuteContext(ctx)
	stop()

	os.Exit(handleError(err, os.Stdout, nil))
}
