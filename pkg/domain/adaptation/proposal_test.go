package adaptation

import (
	"testing"
	"time"

	"github.com/pacerhq/pacer/pkg/domain/plan"
)

func TestChangesVariant(t *testing.T) {
	tests := []struct {
		name    string
		changes Changes
		want    Type
	}{
		{
			name: "difficulty change",
			changes: Changes{
				Type:             TypeDifficultyChange,
				DifficultyChange: &DifficultyChange{FromDifficulty: plan.DifficultyMedium, ToDifficulty: plan.DifficultyEasy},
			},
			want: TypeDifficultyChange,
		},
		{
			name: "reschedule",
			changes: Changes{
				Type:       TypeReschedule,
				Reschedule: &Reschedule{AffectedTaskIDs: []string{"t1"}, ShiftDays: 3},
			},
			want: TypeReschedule,
		},
		{
			name: "buffer add",
			changes: Changes{
				Type:      TypeBufferAdd,
				BufferAdd: &BufferAdd{AfterTaskID: "t1", BufferDays: 2},
			},
			want: TypeBufferAdd,
		},
		{
			name:    "no variant set",
			changes: Changes{Type: TypeReschedule},
			want:    "",
		},
		{
			name: "two variants set",
			changes: Changes{
				Type:       TypeReschedule,
				Reschedule: &Reschedule{ShiftDays: 1},
				BufferAdd:  &BufferAdd{BufferDays: 1},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.changes.Variant(); got != tt.want {
				t.Errorf("Variant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInCooldown(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	decided := func(daysAgo int) *time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return &d
	}

	records := []Record{
		{GoalID: "g1", Proposal: Proposal{Type: TypeReschedule}, Status: StatusRejected, DecidedAt: decided(2)},
		{GoalID: "g1", Proposal: Proposal{Type: TypeBufferAdd}, Status: StatusAccepted, DecidedAt: decided(1)},
		{GoalID: "g2", Proposal: Proposal{Type: TypeDifficultyChange}, Status: StatusRejected, DecidedAt: decided(30)},
	}

	tests := []struct {
		name   string
		goalID string
		typ    Type
		want   bool
	}{
		{"recent rejection of same type blocks", "g1", TypeReschedule, true},
		{"different type is free", "g1", TypeDifficultyChange, false},
		{"accepted records never block", "g1", TypeBufferAdd, false},
		{"old rejection expired", "g2", TypeDifficultyChange, false},
		{"unknown goal", "g3", TypeReschedule, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InCooldown(records, tt.goalID, tt.typ, now, 7); got != tt.want {
				t.Errorf("InCooldown = %v, want %v", got, tt.want)
			}
		})
	}

	if InCooldown(records, "g1", TypeReschedule, now, 0) {
		t.Error("zero cooldown must disable the check")
	}
}
