package cli

import (
	"strings"

	"github.com/microsoft/deployr-cli/internal/app"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/spf13/cobra"
)

// newCompletionCmd generates shell completion scripts for root.
func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion scripts for di.

Examples:
  # Bash
  di completion bash > /etc/bash_completion.d/di

  # Zsh
  di completion zsh > "${fpath[1]}/_di"

  # Fish
  di completion fish > ~/.config/fish/completions/di.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletion(out)
			default:
				return errors.New(errors.ErrCommand,
					"Unknown shell: "+args[0],
					"Supported shells: bash, zsh, fish, powershell")
			}
		},
	}
}

// completeTokens offers the registry's resources, aliases and actions.
func completeTokens(opts func() app.Options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := app.New(opts())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var matches []string
		for _, token := range a.Completions(args) {
			if strings.HasPrefix(token, toComplete) {
				matches = append(matches, token)
			}
		}
		return matches, cobra.ShellCompDirectiveNoFileComp
	}
}
