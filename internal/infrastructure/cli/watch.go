package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacerhq/pacer/internal/infrastructure/watch"
)

var watchDebounceMs int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the workspace and re-evaluate behavior on changes",
	Long: `Watch monitors .pacer/ for task, activity, plan and policy changes and
re-runs the behavioral evaluation when they settle. Useful when another tool
or a sync job writes the workspace. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := getWorkspaceRoot()
		if err != nil {
			return err
		}
		services, err := loadServices(root)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher, err := watch.NewWorkspaceWatcher(root, time.Duration(watchDebounceMs)*time.Millisecond, func(changedFile string) {
			fmt.Printf("\n%s changed at %s\n", changedFile, time.Now().Format("15:04:05"))
			eval, err := services.Evaluation.Evaluate(ctx)
			if err != nil {
				fmt.Printf("evaluation failed: %v\n", MapError(err))
				return
			}
			printEvaluation(eval)
		})
		if err != nil {
			return err
		}

		fmt.Println("Watching .pacer/ for changes... (Ctrl+C to stop)")
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce-ms", 500, "Quiet period before re-evaluating")
	RootCmd.AddCommand(watchCmd)
}
