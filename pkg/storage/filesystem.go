package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

const PacerDir = ".pacer"
const GoalFile = "goal.yaml"
const PlanFile = "plan.json"
const TasksFile = "tasks.json"
const ActivityFile = "activity.json"
const ProposalsFile = "proposals.json"
const PolicyFile = "policy.yaml"
const EventsFile = "events.jsonl"
const UsageFile = "usage.json"

// FilesystemRepository persists all workspace artifacts under root/.pacer.
type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the workspace root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// writeFile persists through the retry policy so a transient filesystem
// failure does not lose a save. A persistent failure still surfaces after
// the attempts are exhausted.
func (r *FilesystemRepository) writeFile(path string, data []byte) error {
	retryer := retry.New[struct{}](r.retryConfig)
	_, err := retryer.Do(context.Background(), func(ctx context.Context) (struct{}, error) {
		// G306: Use 0600 for files
		return struct{}{}, os.WriteFile(path, data, 0600)
	})
	return err
}

// ResolvePath ensures the path is within the .pacer directory and prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, PacerDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	// Traversal check; .pacer holds only direct children.
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, PacerDir)
	// G301: Use 0700 for directories
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create .pacer directory: %w", err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, PacerDir))
	return err == nil
}

func (r *FilesystemRepository) SaveGoal(g *plan.Goal) error {
	path, err := r.ResolvePath(GoalFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal goal: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadGoal() (*plan.Goal, error) {
	retryer := retry.New[*plan.Goal](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*plan.Goal, error) {
		path, err := r.ResolvePath(GoalFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read goal file: %w", err)
		}

		var g plan.Goal
		if err := yaml.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("failed to unmarshal goal: %w", err)
		}

		return &g, nil
	})
}

func (r *FilesystemRepository) SavePlan(stored *plan.StoredPlan) error {
	path, err := r.ResolvePath(PlanFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadPlan() (*plan.StoredPlan, error) {
	path, err := r.ResolvePath(PlanFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var stored plan.StoredPlan
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return &stored, nil
}

func (r *FilesystemRepository) SaveTasks(tasks []plan.TrackedTask) error {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadTasks() ([]plan.TrackedTask, error) {
	path, err := r.ResolvePath(TasksFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []plan.TrackedTask{}, nil
		}
		return nil, fmt.Errorf("failed to read tasks file: %w", err)
	}

	var tasks []plan.TrackedTask
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tasks: %w", err)
	}

	return tasks, nil
}

func (r *FilesystemRepository) SaveLastActivity(ts domain.LastActivity) error {
	path, err := r.ResolvePath(ActivityFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal last activity: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadLastActivity() (*domain.LastActivity, error) {
	path, err := r.ResolvePath(ActivityFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read activity file: %w", err)
	}

	var ts domain.LastActivity
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal last activity: %w", err)
	}

	return &ts, nil
}

func (r *FilesystemRepository) SaveProposals(records []adaptation.Record) error {
	path, err := r.ResolvePath(ProposalsFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal proposals: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadProposals() ([]adaptation.Record, error) {
	path, err := r.ResolvePath(ProposalsFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []adaptation.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read proposals file: %w", err)
	}

	var records []adaptation.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proposals: %w", err)
	}

	return records, nil
}

func (r *FilesystemRepository) UpdateUsage(stats domain.UsageStats) error {
	path, err := r.ResolvePath(UsageFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal usage stats: %w", err)
	}

	return r.writeFile(path, data)
}

func (r *FilesystemRepository) LoadUsage() (*domain.UsageStats, error) {
	path, err := r.ResolvePath(UsageFile)
	if err != nil {
		return nil, err
	}

	// #nosec G304 -- Path is resolved and validated via ResolvePath
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read usage file: %w", err)
	}

	var stats domain.UsageStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage stats: %w", err)
	}

	return &stats, nil
}
