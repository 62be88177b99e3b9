package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tracked tasks",
}

var taskListJSON bool

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked tasks and their completion state",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		repo := services.Workspace.Repo

		tasks, err := repo.LoadTasks()
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}

		if taskListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tasks)
		}

		fmt.Printf("Tracked Tasks (%d)\n", len(tasks))
		fmt.Println(strings.Repeat("-", 24))
		for _, t := range tasks {
			fmt.Printf("%s [%-9s] %-40s (%s)\n", statePrefix(t.Status), t.Status, t.Title, t.ID)
		}
		if len(tasks) == 0 {
			fmt.Println("  (none - accept a plan first)")
		}
		return nil
	},
}

// createTaskTransitionCommand builds the complete/skip/overdue commands. They
// share everything except the target state and whether the transition counts
// as goal activity: overdue marking is bookkeeping, not the user acting.
func createTaskTransitionCommand(use, short string, target behavior.TaskState, countsAsActivity bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := loadServicesForCurrentDir()
			if err != nil {
				return err
			}
			repo := services.Workspace.Repo

			tasks, err := repo.LoadTasks()
			if err != nil {
				return fmt.Errorf("failed to load tasks: %w", err)
			}

			idx, err := findTask(tasks, args[0])
			if err != nil {
				return err
			}

			now := time.Now()
			tasks[idx].Status = target
			if target == behavior.TaskCompleted {
				tasks[idx].CompletedAt = &now
			} else {
				tasks[idx].CompletedAt = nil
			}
			if err := repo.SaveTasks(tasks); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			if countsAsActivity {
				if err := repo.SaveLastActivity(domain.LastActivity{At: now}); err != nil {
					return fmt.Errorf("failed to save last activity: %w", err)
				}
			}

			if err := services.Audit.Log("task."+string(target), "human", map[string]interface{}{
				"task_id": tasks[idx].ID,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
			}

			fmt.Printf("Task %q marked %s.\n", tasks[idx].Title, target)
			return nil
		},
	}
}

// findTask matches by full id or unique prefix, so users can type the first
// few characters of a UUID.
func findTask(tasks []plan.TrackedTask, id string) (int, error) {
	match := -1
	for i := range tasks {
		if tasks[i].ID == id {
			return i, nil
		}
		if strings.HasPrefix(tasks[i].ID, id) {
			if match >= 0 {
				return 0, fmt.Errorf("task id %q is ambiguous, give more characters", id)
			}
			match = i
		}
	}
	if match < 0 {
		return 0, fmt.Errorf("no task with id %q, run 'pacer task list' to see ids", id)
	}
	return match, nil
}

func statePrefix(s behavior.TaskState) string {
	switch s {
	case behavior.TaskCompleted:
		return "[x]"
	case behavior.TaskSkipped:
		return "[s]"
	case behavior.TaskOverdue:
		return "[!]"
	default:
		return "[ ]"
	}
}

func init() {
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output in JSON format")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(createTaskTransitionCommand("complete", "Mark a task as completed", behavior.TaskCompleted, true))
	taskCmd.AddCommand(createTaskTransitionCommand("skip", "Mark a task as skipped", behavior.TaskSkipped, true))
	taskCmd.AddCommand(createTaskTransitionCommand("overdue", "Mark a task as overdue", behavior.TaskOverdue, false))
	taskCmd.AddCommand(createTaskTransitionCommand("reopen", "Put a task back to pending", behavior.TaskPending, false))

	RootCmd.AddCommand(taskCmd)
}
