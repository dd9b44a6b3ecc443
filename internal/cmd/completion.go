package cmd

import (
	"io"

	"github.com/spf13/cobra"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tbl.

Bash:
  $ source <(tbl completion bash)
  # Linux, once:
  $ tbl completion bash > /etc/bash_completion.d/tbl

Zsh:
  $ tbl completion zsh > "${fpath[1]}/_tbl"

Fish:
  $ tbl completion fish > ~/.config/fish/completions/tbl.fish

PowerShell:
  PS> tbl completion powershell | Out-String | Invoke-Expression

You will need to start a new shell for this setup to take effect.`,
		ValidArgs: completionShells,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], stdoutFromContext(cmd.Context()))
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return clierrors.InvalidChoiceError("shell", shell, completionShells)
	}
}
