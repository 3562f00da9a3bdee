package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/c4export/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for c4export.

To load completions:

Bash:
  $ source <(c4export completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ c4export completion bash > /etc/bash_completion.d/c4export
  # macOS:
  $ c4export completion bash > $(brew --prefix)/etc/bash_completion.d/c4export

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ c4export completion zsh > "${fpath[1]}/_c4export"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ c4export completion fish | source

  # To load completions for each session, execute once:
  $ c4export completion fish > ~/.config/fish/completions/c4export.fish

PowerShell:
  PS> c4export completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> c4export completion powershell > c4export.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeDocuments completes the document argument with JSON and YAML files.
func completeDocuments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completePageNames completes --page with the pages of the document named by
// the first argument.
func completePageNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	doc, err := readDocument(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return pipeline.PageNames(doc), cobra.ShellCompDirectiveNoFileComp
}
