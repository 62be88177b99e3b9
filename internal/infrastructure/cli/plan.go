package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/domain/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and manage the goal plan",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a task plan for the goal",
	Long: `Generate asks the configured AI provider for a structured task plan.
The output is validated against hard bounds before it is stored; invalid
output is rejected outright. The plan stays inert until you accept it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		stored, err := services.Plan.Generate(cmd.Context())
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Generated plan: %s\n", stored.Plan.Title)
		fmt.Printf("Status: %s\n", stored.Status)
		printPlanTasks(stored)
		fmt.Printf("\n%s\n", stored.Plan.Explanation)
		fmt.Println("\nAccept it with 'pacer plan accept'.")
		return nil
	},
}

var planAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Accept the pending plan and start tracking its tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		stored, err := services.Plan.Accept(cmd.Context())
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Plan accepted. %d tasks are now tracked.\n", len(stored.Plan.Tasks))
		fmt.Println("Mark progress with 'pacer task complete <id>'.")
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		stored, err := services.Plan.Get()
		if err != nil {
			return MapError(err)
		}

		fmt.Printf("Plan: %s\n", stored.Plan.Title)
		fmt.Printf("Status: %s\n", stored.Status)
		printPlanTasks(stored)
		return nil
	},
}

func printPlanTasks(stored *plan.StoredPlan) {
	fmt.Printf("Tasks: %d\n", len(stored.Plan.Tasks))
	for _, t := range stored.Plan.Tasks {
		optional := ""
		if t.IsOptional {
			optional = " (optional)"
		}
		fmt.Printf("  %2d. %-40s [%s, %s, %dmin]%s\n",
			t.OrderIndex+1, t.Title, t.Difficulty, t.Frequency, t.EstimatedDuration, optional)
	}
}

func init() {
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planAcceptCmd)
	planCmd.AddCommand(planShowCmd)
	RootCmd.AddCommand(planCmd)
}
