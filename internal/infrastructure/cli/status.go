package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/application"
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a high-level summary of the goal, plan and recent behavior",
	RunE:  runStatusCmd,
}

type statusOutput struct {
	Goal          string               `json:"goal"`
	PlanStatus    string               `json:"plan_status,omitempty"`
	TaskCounts    map[string]int       `json:"task_counts,omitempty"`
	Evaluation    *behavior.Evaluation `json:"evaluation,omitempty"`
	OpenProposals int                  `json:"open_proposals"`
	TokensSpent   int                  `json:"tokens_spent"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
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

	stored, err := repo.LoadPlan()
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	tasks, err := repo.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	records, err := repo.LoadProposals()
	if err != nil {
		return fmt.Errorf("failed to load proposals: %w", err)
	}
	open := 0
	for _, r := range records {
		if r.Status == adaptation.StatusProposed || r.Status == adaptation.StatusAccepted {
			open++
		}
	}

	stats, err := repo.LoadUsage()
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}
	tokens := 0
	if stats != nil {
		tokens = stats.TotalTokens()
	}

	var eval *behavior.Evaluation
	if stored != nil && stored.Status == plan.StatusActive {
		eval, err = services.Evaluation.Evaluate(cmd.Context())
		if err != nil {
			return MapError(err)
		}
	}

	if statusJSON {
		out := statusOutput{
			Goal:          goal.Description,
			TaskCounts:    countTaskStates(tasks),
			Evaluation:    eval,
			OpenProposals: open,
			TokensSpent:   tokens,
		}
		if stored != nil {
			out.PlanStatus = string(stored.Status)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Goal: %s\n", goal.Description)
	if stored == nil {
		fmt.Println("Plan: none yet. Run 'pacer plan generate'.")
		return nil
	}
	fmt.Printf("Plan: %s (%s)\n", stored.Plan.Title, stored.Status)

	counts := countTaskStates(tasks)
	fmt.Printf("Tasks: %d\n", len(tasks))
	fmt.Printf("- Pending:   %d\n", counts[string(behavior.TaskPending)])
	fmt.Printf("- Completed: %d\n", counts[string(behavior.TaskCompleted)])
	fmt.Printf("- Skipped:   %d\n", counts[string(behavior.TaskSkipped)])
	fmt.Printf("- Overdue:   %d\n", counts[string(behavior.TaskOverdue)])

	if eval != nil {
		fmt.Println()
		printEvaluation(eval)
	}

	if open > 0 {
		fmt.Printf("\nOpen proposals: %d. Run 'pacer adapt list'.\n", open)
	}
	fmt.Printf("\nAI tokens spent: %d\n", tokens)
	fmt.Println("Audit trail: .pacer/events.jsonl")
	return nil
}

func countTaskStates(tasks []plan.TrackedTask) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[string(t.Status)]++
	}
	return counts
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(statusCmd)
}
