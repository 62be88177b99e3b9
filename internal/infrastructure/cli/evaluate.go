package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/pkg/domain/behavior"
)

var evaluateJSON bool

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run the behavioral engine over the current workspace state",
	Long: `Evaluate computes completion rate, failure streak and inactivity from the
tracked tasks and classifies them into signals. It never calls the AI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		eval, err := services.Evaluation.Evaluate(cmd.Context())
		if err != nil {
			return MapError(err)
		}

		if evaluateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(eval)
		}

		printEvaluation(eval)
		return nil
	},
}

func printEvaluation(eval *behavior.Evaluation) {
	fmt.Printf("Completion rate: %d%% (%d/%d tasks in window)\n",
		eval.Metrics.CompletionRate, eval.Metrics.CompletedTasks, eval.Metrics.TotalTasks)
	fmt.Printf("Consecutive failures: %d\n", eval.Metrics.ConsecutiveFailures)
	if eval.Metrics.InactiveDays == behavior.InactiveForever {
		fmt.Println("Inactive days: no activity recorded yet")
	} else {
		fmt.Printf("Inactive days: %d\n", eval.Metrics.InactiveDays)
	}

	fmt.Println("\nSignals:")
	for _, s := range eval.Signals {
		if s.Severity == behavior.SeverityNone {
			fmt.Printf("  %s: %s\n", s.Type, s.Message)
		} else {
			fmt.Printf("  %s (%s): %s\n", s.Type, s.Severity, s.Message)
		}
	}

	if eval.ShouldTriggerAdaptation {
		fmt.Println("\nAdaptation suggested. Run 'pacer adapt propose' to ask for one.")
	}
}

func init() {
	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Output in JSON format")
	RootCmd.AddCommand(evaluateCmd)
}
