package cli

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [shell]",
	Short: "Generate shell completion for pacer",
	Long: `Generate a shell completion script for pacer commands and flags.

The script is printed to stdout; load it from your shell profile or drop it
into the shell's completion directory.`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Completion script for bash",
	Example: `  # Current session only
  source <(pacer completion bash)

  # Every session
  pacer completion bash > /etc/bash_completion.d/pacer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Completion script for zsh",
	Example: `  pacer completion zsh > "${fpath[1]}/_pacer"
  # then restart the shell`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenZshCompletion(cmd.OutOrStdout())
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Completion script for fish",
	Example: `  pacer completion fish > ~/.config/fish/completions/pacer.fish`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
	},
}

var completionPowershellCmd = &cobra.Command{
	Use:   "powershell",
	Short: "Completion script for powershell",
	Example: `  pacer completion powershell | Out-String | Invoke-Expression`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	completionCmd.AddCommand(completionPowershellCmd)
	RootCmd.AddCommand(completionCmd)
}
