package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/application"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the goal this workspace is coaching",
}

var (
	goalCoach      string
	goalTimezone   string
	goalStyle      string
	goalDifficulty string
)

var goalSetCmd = &cobra.Command{
	Use:   "set <description>",
	Short: "Set or replace the goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo
		if !repo.IsInitialized() {
			return MapError(application.ErrNotInitialized)
		}

		if goalDifficulty != "" && !plan.Difficulty(goalDifficulty).IsValid() {
			return fmt.Errorf("unknown difficulty %q, use one of %v", goalDifficulty, plan.AllDifficulties())
		}
		if _, err := time.LoadLocation(goalTimezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", goalTimezone, err)
		}

		goal := &plan.Goal{
			ID:          uuid.NewString(),
			Description: args[0],
			CoachName:   goalCoach,
			Timezone:    goalTimezone,
			Preferences: plan.Preferences{
				CommunicationStyle:  goalStyle,
				PreferredDifficulty: plan.Difficulty(goalDifficulty),
			},
			CreatedAt: time.Now(),
		}
		if err := repo.SaveGoal(goal); err != nil {
			return fmt.Errorf("failed to save goal: %w", err)
		}

		if err := services.Audit.Log("goal.set", "human", map[string]interface{}{
			"goal_id": goal.ID,
		}); err != nil {
			return fmt.Errorf("failed to log goal event: %w", err)
		}

		fmt.Printf("Goal set: %s\n", goal.Description)
		fmt.Println("Next: pacer plan generate")
		return nil
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo
		if !repo.IsInitialized() {
			return MapError(application.ErrNotInitialized)
		}

		goal, err := repo.LoadGoal()
		if err != nil {
			return fmt.Errorf("failed to load goal: %w", err)
		}
		if goal == nil {
			return MapError(application.ErrNoGoal)
		}

		fmt.Printf("Goal: %s\n", goal.Description)
		fmt.Printf("Coach: %s\n", goal.CoachName)
		fmt.Printf("Timezone: %s\n", goal.Timezone)
		if goal.Preferences.CommunicationStyle != "" {
			fmt.Printf("Communication style: %s\n", goal.Preferences.CommunicationStyle)
		}
		if goal.Preferences.PreferredDifficulty != "" {
			fmt.Printf("Preferred difficulty: %s\n", goal.Preferences.PreferredDifficulty)
		}
		fmt.Printf("Created: %s\n", goal.CreatedAt.Format("2006-01-02"))
		return nil
	},
}

func init() {
	goalSetCmd.Flags().StringVar(&goalCoach, "coach", "Pacer", "Name the coach persona uses for itself")
	goalSetCmd.Flags().StringVar(&goalTimezone, "timezone", "UTC", "IANA timezone for day boundaries")
	goalSetCmd.Flags().StringVar(&goalStyle, "style", "", "Preferred communication style (e.g. encouraging, direct)")
	goalSetCmd.Flags().StringVar(&goalDifficulty, "difficulty", "", "Preferred initial difficulty (easy, medium, hard, extreme)")

	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalShowCmd)
	RootCmd.AddCommand(goalCmd)
}
