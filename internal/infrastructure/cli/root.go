package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var projectPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "pacer",
	Version: Version,
	Short:   "An adaptive coaching companion for personal goals",
	Long: `Pacer tracks how you actually behave against your goal plan.
It watches completion rates, failure streaks and inactivity, and when you
struggle it asks an AI for one bounded plan adjustment. Nothing changes
until you accept it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&projectPath, "workspace", "", "Workspace directory (defaults to the current directory)")
}
