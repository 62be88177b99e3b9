package behavior

import (
	"reflect"
	"testing"
	"time"
)

func TestEvaluateHealthy(t *testing.T) {
	input := EvaluationInput{
		Tasks: []TaskSnapshot{
			taskAt(TaskCompleted, 2),
			taskAt(TaskCompleted, 1),
		},
		LastActivityDate:   ptrTime(evalDate.AddDate(0, 0, -1)),
		EvaluationDate:     evalDate,
		AnalysisWindowDays: 30,
	}

	result := Evaluate(input)
	if len(result.Signals) != 1 || result.Signals[0].Type != SignalHealthy {
		t.Fatalf("expected a single healthy signal, got %v", result.Signals)
	}
	if result.Signals[0].Severity != SeverityNone {
		t.Errorf("healthy severity = %s, want none", result.Signals[0].Severity)
	}
	if result.ShouldTriggerAdaptation {
		t.Error("healthy evaluation must not trigger adaptation")
	}
	if !result.EvaluatedAt.Equal(evalDate) {
		t.Errorf("evaluated_at = %v, want %v", result.EvaluatedAt, evalDate)
	}
}

func TestEvaluateStrugglingScenario(t *testing.T) {
	// completed(5d ago), then three skips: struggling/medium, trigger fires.
	input := EvaluationInput{
		Tasks: []TaskSnapshot{
			taskAt(TaskCompleted, 5),
			taskAt(TaskSkipped, 3),
			taskAt(TaskSkipped, 2),
			taskAt(TaskSkipped, 1),
		},
		LastActivityDate:   ptrTime(evalDate.AddDate(0, 0, -1)),
		EvaluationDate:     evalDate,
		AnalysisWindowDays: 30,
	}

	result := Evaluate(input)
	if result.Metrics.ConsecutiveFailures != 3 {
		t.Fatalf("consecutive failures = %d, want 3", result.Metrics.ConsecutiveFailures)
	}
	if !result.ShouldTriggerAdaptation {
		t.Error("expected adaptation trigger")
	}
	if !hasSignalWithSeverity(result, SignalStruggling, SeverityMedium) {
		t.Errorf("expected struggling/medium in %v", result.Signals)
	}
}

func TestEvaluateCriticalScenario(t *testing.T) {
	var tasks []TaskSnapshot
	for i := 1; i <= 10; i++ {
		tasks = append(tasks, TaskSnapshot{
			ID:        time.Duration(i).String(),
			Status:    TaskSkipped,
			CreatedAt: evalDate.AddDate(0, 0, -i),
		})
	}

	result := Evaluate(EvaluationInput{
		Tasks:              tasks,
		LastActivityDate:   ptrTime(evalDate.AddDate(0, 0, -1)),
		EvaluationDate:     evalDate,
		AnalysisWindowDays: 30,
	})

	if result.Metrics.CompletionRate != 0 {
		t.Fatalf("completion rate = %d, want 0", result.Metrics.CompletionRate)
	}
	if !hasSignalWithSeverity(result, SignalCritical, SeverityCritical) {
		t.Errorf("expected critical/critical in %v", result.Signals)
	}
	if !result.ShouldTriggerAdaptation {
		t.Error("expected adaptation trigger")
	}
}

func TestEvaluateAbandonmentAloneNeverTriggers(t *testing.T) {
	// Healthy completion behavior but two weeks of silence.
	input := EvaluationInput{
		Tasks: []TaskSnapshot{
			taskAt(TaskCompleted, 20),
			taskAt(TaskCompleted, 16),
		},
		LastActivityDate:   ptrTime(evalDate.AddDate(0, 0, -14)),
		EvaluationDate:     evalDate,
		AnalysisWindowDays: 30,
	}

	result := Evaluate(input)
	if !hasSignalWithSeverity(result, SignalAbandonmentRisk, SeverityCritical) {
		t.Fatalf("expected abandonment_risk/critical in %v", result.Signals)
	}
	if result.HasSignal(SignalStruggling) || result.HasSignal(SignalCritical) {
		t.Fatalf("unexpected extra signals: %v", result.Signals)
	}
	if result.ShouldTriggerAdaptation {
		t.Error("abandonment risk alone must not trigger adaptation")
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	input := EvaluationInput{
		Tasks: []TaskSnapshot{
			taskAt(TaskCompleted, 8),
			taskAt(TaskSkipped, 4),
			taskAt(TaskOverdue, 3),
			taskAt(TaskSkipped, 2),
			taskAt(TaskPending, 1),
		},
		LastActivityDate:   ptrTime(evalDate.AddDate(0, 0, -9)),
		EvaluationDate:     evalDate,
		AnalysisWindowDays: 30,
	}

	first := Evaluate(input)
	second := Evaluate(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluation is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEvaluateMetricsInvariant(t *testing.T) {
	inputs := [][]TaskSnapshot{
		nil,
		{taskAt(TaskPending, 1)},
		{taskAt(TaskCompleted, 1), taskAt(TaskSkipped, 2), taskAt(TaskPending, 3)},
		{taskAt(TaskOverdue, 1), taskAt(TaskOverdue, 40)},
	}

	for _, tasks := range inputs {
		result := Evaluate(EvaluationInput{
			Tasks:              tasks,
			EvaluationDate:     evalDate,
			AnalysisWindowDays: 30,
		})
		m := result.Metrics
		if m.CompletedTasks+m.FailedTasks > m.TotalTasks {
			t.Errorf("completed %d + failed %d exceeds total %d", m.CompletedTasks, m.FailedTasks, m.TotalTasks)
		}
	}
}

func hasSignalWithSeverity(e Evaluation, st SignalType, sev Severity) bool {
	for _, s := range e.Signals {
		if s.Type == st && s.Severity == sev {
			return true
		}
	}
	return false
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
