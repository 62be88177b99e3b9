package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
	"github.com/pacerhq/pacer/pkg/storage"
)

// resetFlags restores every flag on cmd and its subcommands to its default,
// so each runCommand invocation behaves like a fresh process despite the
// shared package-level RootCmd.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// runCommand executes the root command against a workspace directory.
func runCommand(t *testing.T, dir string, args ...string) error {
	t.Helper()

	resetFlags(RootCmd)

	old := projectPath
	t.Cleanup(func() { projectPath = old })
	projectPath = dir

	buf := new(bytes.Buffer)
	RootCmd.SetOut(buf)
	RootCmd.SetErr(buf)
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()

	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	if !repo.IsInitialized() {
		t.Fatal("expected .pacer directory to exist")
	}
	cfg, err := repo.LoadPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AllowAI || cfg.CooldownDays != 7 || cfg.AnalysisWindowDays != 30 {
		t.Errorf("unexpected default policy: %+v", cfg)
	}

	events, err := repo.LoadEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Action != "workspace.init" {
		t.Errorf("expected a single workspace.init event, got %+v", events)
	}

	// Re-init is a no-op, not an error.
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Errorf("re-init failed: %v", err)
	}
}

func TestGoalSetAndShow(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "goal", "set", "Run a 10k", "--coach", "Sam", "--timezone", "Europe/Berlin"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	goal, err := repo.LoadGoal()
	if err != nil {
		t.Fatal(err)
	}
	if goal == nil || goal.Description != "Run a 10k" || goal.CoachName != "Sam" {
		t.Errorf("unexpected goal: %+v", goal)
	}

	if err := runCommand(t, tmpDir, "goal", "show"); err != nil {
		t.Errorf("goal show failed: %v", err)
	}
}

func TestGoalSetRejectsBadInput(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "goal", "set", "Run", "--timezone", "Mars/Olympus"); err == nil {
		t.Error("expected error for unknown timezone")
	}
	if err := runCommand(t, tmpDir, "goal", "set", "Run", "--timezone", "UTC", "--difficulty", "impossible"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

// seedTrackedTasks writes tracked tasks directly, standing in for an accepted
// plan.
func seedTrackedTasks(t *testing.T, dir string) []plan.TrackedTask {
	t.Helper()
	repo := storage.NewFilesystemRepository(dir)
	now := time.Now()
	tasks := []plan.TrackedTask{
		{ID: "aaaa-1111", Title: "Easy run", Difficulty: plan.DifficultyEasy, Status: behavior.TaskPending, CreatedAt: now},
		{ID: "bbbb-2222", Title: "Interval session", Difficulty: plan.DifficultyMedium, Status: behavior.TaskPending, CreatedAt: now},
	}
	if err := repo.SaveTasks(tasks); err != nil {
		t.Fatal(err)
	}
	return tasks
}

func TestTaskCompleteAndSkip(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	seedTrackedTasks(t, tmpDir)

	if err := runCommand(t, tmpDir, "task", "complete", "aaaa-1111"); err != nil {
		t.Fatal(err)
	}
	// Prefix matching.
	if err := runCommand(t, tmpDir, "task", "skip", "bbbb"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	tasks, err := repo.LoadTasks()
	if err != nil {
		t.Fatal(err)
	}
	if tasks[0].Status != behavior.TaskCompleted || tasks[0].CompletedAt == nil {
		t.Errorf("expected first task completed with timestamp, got %+v", tasks[0])
	}
	if tasks[1].Status != behavior.TaskSkipped {
		t.Errorf("expected second task skipped, got %+v", tasks[1])
	}

	// Completing counts as activity.
	activity, err := repo.LoadLastActivity()
	if err != nil {
		t.Fatal(err)
	}
	if activity == nil {
		t.Error("expected last activity to be recorded")
	}
}

func TestTaskOverdueDoesNotTouchActivity(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	seedTrackedTasks(t, tmpDir)

	if err := runCommand(t, tmpDir, "task", "overdue", "aaaa-1111"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	activity, err := repo.LoadLastActivity()
	if err != nil {
		t.Fatal(err)
	}
	if activity != nil {
		t.Error("overdue marking must not count as user activity")
	}
}

func TestTaskUnknownID(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	seedTrackedTasks(t, tmpDir)

	if err := runCommand(t, tmpDir, "task", "complete", "zzzz"); err == nil {
		t.Error("expected error for unknown task id")
	}
}

func TestEvaluateCommand(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, tmpDir, "goal", "set", "Run a 10k"); err != nil {
		t.Fatal(err)
	}
	seedTrackedTasks(t, tmpDir)

	if err := runCommand(t, tmpDir, "evaluate"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	stats, err := repo.LoadUsage()
	if err != nil {
		t.Fatal(err)
	}
	if stats == nil || stats.Evaluations != 1 {
		t.Errorf("expected one recorded evaluation, got %+v", stats)
	}
}

func TestEvaluateWithoutGoal(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "evaluate"); err == nil {
		t.Error("expected error when no goal is set")
	}
}

func TestAdaptListEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "adapt", "list"); err != nil {
		t.Errorf("adapt list on empty workspace failed: %v", err)
	}
}

func TestAdaptDecisionWithoutProposal(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "adapt", "accept"); err == nil {
		t.Error("expected error when no proposal is open")
	}
}

func TestAIConfigureAndShow(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "ai", "configure",
		"--provider", "mock", "--model", "test", "--token-limit", "5000", "--cooldown-days", "3"); err != nil {
		t.Fatal(err)
	}

	repo := storage.NewFilesystemRepository(tmpDir)
	cfg, err := repo.LoadPolicy()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenLimit != 5000 || cfg.CooldownDays != 3 {
		t.Errorf("unexpected policy: %+v", cfg)
	}
	if !cfg.AllowAI {
		t.Error("allow_ai should stay true when the flag is untouched")
	}

	aiPath := filepath.Join(tmpDir, storage.PacerDir, "ai.yaml")
	if _, err := os.Stat(aiPath); err != nil {
		t.Errorf("expected ai.yaml to be written: %v", err)
	}

	if err := runCommand(t, tmpDir, "ai", "show"); err != nil {
		t.Errorf("ai show failed: %v", err)
	}
}

func TestAuditTimelineAndVerify(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, tmpDir, "goal", "set", "Run a 10k"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "audit", "timeline"); err != nil {
		t.Errorf("audit timeline failed: %v", err)
	}
	if err := runCommand(t, tmpDir, "audit", "verify"); err != nil {
		t.Errorf("audit verify failed: %v", err)
	}
	if err := runCommand(t, tmpDir, "audit", "stats"); err != nil {
		t.Errorf("audit stats failed: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, tmpDir, "goal", "set", "Run a 10k"); err != nil {
		t.Fatal(err)
	}

	// No plan yet: still succeeds.
	if err := runCommand(t, tmpDir, "status"); err != nil {
		t.Errorf("status failed: %v", err)
	}
}

func TestNotificationsListEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	if err := runCommand(t, tmpDir, "init"); err != nil {
		t.Fatal(err)
	}
	if err := runCommand(t, tmpDir, "goal", "set", "Run a 10k"); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, tmpDir, "notifications", "list"); err != nil {
		t.Errorf("notifications list failed: %v", err)
	}
}

func TestFindTask(t *testing.T) {
	tasks := []plan.TrackedTask{
		{ID: "abc-123"},
		{ID: "abd-456"},
	}

	if idx, err := findTask(tasks, "abc-123"); err != nil || idx != 0 {
		t.Errorf("exact match failed: idx=%d err=%v", idx, err)
	}
	if idx, err := findTask(tasks, "abd"); err != nil || idx != 1 {
		t.Errorf("prefix match failed: idx=%d err=%v", idx, err)
	}
	if _, err := findTask(tasks, "ab"); err == nil {
		t.Error("expected ambiguity error")
	}
	if _, err := findTask(tasks, "zzz"); err == nil {
		t.Error("expected not-found error")
	}
}

func TestStatePrefix(t *testing.T) {
	tests := []struct {
		state behavior.TaskState
		want  string
	}{
		{behavior.TaskPending, "[ ]"},
		{behavior.TaskCompleted, "[x]"},
		{behavior.TaskSkipped, "[s]"},
		{behavior.TaskOverdue, "[!]"},
	}
	for _, tt := range tests {
		if got := statePrefix(tt.state); got != tt.want {
			t.Errorf("statePrefix(%s) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
