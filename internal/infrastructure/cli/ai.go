package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/internal/infrastructure/config"
	"github.com/pacerhq/pacer/pkg/storage"
)

var (
	aiProvider   string
	aiModel      string
	aiTimeoutMs  int
	aiAllow      bool
	aiTokenLimit int
	aiCooldown   int
	aiWindow     int
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Manage AI configuration and policy",
}

var aiConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure AI provider and policy settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		repo := storage.NewFilesystemRepository(root)
		if !repo.IsInitialized() {
			return fmt.Errorf("pacer is not initialized in this directory")
		}

		cfg, err := repo.LoadPolicy()
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}

		aiCfg, err := config.LoadAIConfig(root)
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}
		if aiCfg == nil {
			aiCfg = &config.AIConfig{}
		}

		// Only flags the user actually set are applied.
		if cmd.Flags().Changed("provider") {
			aiCfg.Provider = aiProvider
		}
		if cmd.Flags().Changed("model") {
			aiCfg.Model = aiModel
		}
		if cmd.Flags().Changed("timeout-ms") {
			if aiTimeoutMs <= 0 {
				return fmt.Errorf("timeout-ms must be positive")
			}
			aiCfg.TimeoutMs = aiTimeoutMs
		}
		if cmd.Flags().Changed("allow") {
			cfg.AllowAI = aiAllow
		}
		if cmd.Flags().Changed("token-limit") {
			if aiTokenLimit < 0 {
				return fmt.Errorf("token-limit cannot be negative")
			}
			cfg.TokenLimit = aiTokenLimit
		}
		if cmd.Flags().Changed("cooldown-days") {
			if aiCooldown < 0 {
				return fmt.Errorf("cooldown-days cannot be negative")
			}
			cfg.CooldownDays = aiCooldown
		}
		if cmd.Flags().Changed("window-days") {
			if aiWindow <= 0 {
				return fmt.Errorf("window-days must be positive")
			}
			cfg.AnalysisWindowDays = aiWindow
		}

		if err := repo.SavePolicy(cfg); err != nil {
			return fmt.Errorf("failed to save policy: %w", err)
		}
		if err := config.SaveAIConfig(root, aiCfg); err != nil {
			return fmt.Errorf("failed to save AI config: %w", err)
		}

		fmt.Println("AI configuration saved.")
		fmt.Println("- Governance (allow_ai, token_limit, cooldown_days) lives in .pacer/policy.yaml")
		fmt.Println("- Provider/model defaults live in .pacer/ai.yaml")
		return nil
	},
}

var aiShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective AI configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		repo := storage.NewFilesystemRepository(root)
		if !repo.IsInitialized() {
			return fmt.Errorf("pacer is not initialized in this directory")
		}

		cfg, err := repo.LoadPolicy()
		if err != nil {
			return fmt.Errorf("failed to load policy: %w", err)
		}
		aiCfg, err := config.LoadAIConfig(root)
		if err != nil {
			return fmt.Errorf("failed to load AI config: %w", err)
		}

		provider, model := "ollama", "llama3"
		timeoutMs := 0
		if aiCfg != nil {
			if aiCfg.Provider != "" {
				provider = aiCfg.Provider
			}
			if aiCfg.Model != "" {
				model = aiCfg.Model
			}
			timeoutMs = aiCfg.TimeoutMs
		}

		fmt.Printf("Provider: %s\n", provider)
		fmt.Printf("Model: %s\n", model)
		if timeoutMs > 0 {
			fmt.Printf("Timeout: %dms\n", timeoutMs)
		} else {
			fmt.Println("Timeout: default (30s)")
		}
		fmt.Printf("AI allowed: %v\n", cfg.AllowAI)
		printLimit("Token limit", cfg.TokenLimit)
		fmt.Printf("Cooldown days: %d\n", cfg.CooldownDays)
		fmt.Printf("Analysis window days: %d\n", cfg.AnalysisWindowDays)
		fmt.Println("\nEnvironment overrides: PACER_AI_PROVIDER, PACER_AI_MODEL")
		return nil
	},
}

func printLimit(label string, limit int) {
	if limit == 0 {
		fmt.Printf("%s: unlimited\n", label)
		return
	}
	fmt.Printf("%s: %d\n", label, limit)
}

func init() {
	aiConfigureCmd.Flags().StringVar(&aiProvider, "provider", "", "AI provider (ollama, openai, mock)")
	aiConfigureCmd.Flags().StringVar(&aiModel, "model", "", "Model name for the provider")
	aiConfigureCmd.Flags().IntVar(&aiTimeoutMs, "timeout-ms", 0, "Per-request timeout in milliseconds")
	aiConfigureCmd.Flags().BoolVar(&aiAllow, "allow", true, "Allow AI calls from this workspace")
	aiConfigureCmd.Flags().IntVar(&aiTokenLimit, "token-limit", 0, "Max total tokens across providers (0 = unlimited)")
	aiConfigureCmd.Flags().IntVar(&aiCooldown, "cooldown-days", 0, "Days before re-offering a rejected proposal type")
	aiConfigureCmd.Flags().IntVar(&aiWindow, "window-days", 0, "Analysis window for completion rate")

	aiCmd.AddCommand(aiConfigureCmd)
	aiCmd.AddCommand(aiShowCmd)
	RootCmd.AddCommand(aiCmd)
}
