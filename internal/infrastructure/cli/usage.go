package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show AI token spend and evaluation counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo

		stats, err := repo.LoadUsage()
		if err != nil {
			return fmt.Errorf("failed to load usage: %w", err)
		}
		cfg, err := repo.LoadPolicy()
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}

		if stats == nil {
			fmt.Println("No usage recorded yet.")
			return nil
		}

		fmt.Printf("AI commands: %d\n", stats.TotalCommands)
		fmt.Printf("Evaluations: %d\n", stats.Evaluations)
		if !stats.LastCommandAt.IsZero() {
			fmt.Printf("Last AI command: %s\n", stats.LastCommandAt.Format("2006-01-02 15:04:05"))
		}

		if cfg.TokenLimit > 0 {
			fmt.Printf("Tokens: %d / %d\n", stats.TotalTokens(), cfg.TokenLimit)
		} else {
			fmt.Printf("Tokens: %d (no limit)\n", stats.TotalTokens())
		}

		keys := make([]string, 0, len(stats.ProviderStats))
		for k := range stats.ProviderStats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("- %s: %d\n", k, stats.ProviderStats[k])
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(usageCmd)
}
