package scoring

import (
	"math"
	"testing"

	"github.com/julianstephens/dailytrack/internal/models"
)

func task(id string, benchmark, weight float64) models.TaskDefinition {
	return models.TaskDefinition{ID: id, Name: id, Benchmark: benchmark, Weight: weight, IsActive: true}
}

func entry(taskID string, value float64) models.DailyEntry {
	return models.DailyEntry{TaskID: taskID, Value: value}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTaskRatio(t *testing.T) {
	checkbox := task("cb", 1, 1)
	checkbox.IsCheckbox = true

	tests := []struct {
		name  string
		task  models.TaskDefinition
		value float64
		want  float64
	}{
		{"partial", task("a", 4, 1), 2, 0.5},
		{"capped", task("a", 4, 1), 6, 1},
		{"zero value", task("a", 4, 1), 0, 0},
		{"zero benchmark", task("a", 0, 1), 3, 0},
		{"negative benchmark", task("a", -2, 1), 3, 0},
		{"checkbox ticked", checkbox, 1, 1},
		{"checkbox large value", checkbox, 7, 1},
		{"checkbox empty", checkbox, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaskRatio(tt.task, tt.value)
			if !almostEqual(got, tt.want) {
				t.Errorf("TaskRatio() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("TaskRatio() = %v out of [0,1]", got)
			}
		})
	}
}

func TestDisplayRatio(t *testing.T) {
	if got := DisplayRatio(task("a", 4, 1), 6); !almostEqual(got, 1.5) {
		t.Errorf("expected uncapped 1.5, got %v", got)
	}
	if got := DisplayRatio(task("a", 0, 1), 6); got != 0 {
		t.Errorf("expected 0 for zero benchmark, got %v", got)
	}
}

func TestDailyScore(t *testing.T) {
	t.Run("weighted scenario", func(t *testing.T) {
		tasks := []models.TaskDefinition{task("a", 4, 1), task("b", 1, 1)}
		tasks[1].IsCheckbox = true

		got := DailyScore(tasks, []models.DailyEntry{entry("a", 2), entry("b", 1)})
		if !almostEqual(got, 0.75) {
			t.Errorf("expected 0.75, got %v", got)
		}
	})

	t.Run("missing entry counts as zero", func(t *testing.T) {
		tasks := []models.TaskDefinition{task("a", 2, 1), task("b", 2, 1)}
		got := DailyScore(tasks, []models.DailyEntry{entry("a", 2)})
		if !almostEqual(got, 0.5) {
			t.Errorf("expected 0.5, got %v", got)
		}
	})

	t.Run("weights", func(t *testing.T) {
		tasks := []models.TaskDefinition{task("a", 1, 3), task("b", 1, 1)}
		got := DailyScore(tasks, []models.DailyEntry{entry("a", 1)})
		if !almostEqual(got, 0.75) {
			t.Errorf("expected 0.75, got %v", got)
		}
	})

	t.Run("inactive and cumulative excluded", func(t *testing.T) {
		inactive := task("off", 1, 5)
		inactive.IsActive = false
		cumulative := task("cum", 10, 5)
		cumulative.IsCumulative = true

		tasks := []models.TaskDefinition{task("a", 1, 1), inactive, cumulative}
		got := DailyScore(tasks, []models.DailyEntry{entry("a", 1), entry("cum", 10)})
		if !almostEqual(got, 1) {
			t.Errorf("expected 1, got %v", got)
		}
	})

	t.Run("zero total weight", func(t *testing.T) {
		tasks := []models.TaskDefinition{task("a", 1, 0)}
		if got := DailyScore(tasks, []models.DailyEntry{entry("a", 1)}); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
		if got := DailyScore(nil, nil); got != 0 {
			t.Errorf("expected 0 for no tasks, got %v", got)
		}
	})

	t.Run("over-achievement capped", func(t *testing.T) {
		tasks := []models.TaskDefinition{task("a", 1, 1)}
		if got := DailyScore(tasks, []models.DailyEntry{entry("a", 9)}); !almostEqual(got, 1) {
			t.Errorf("expected 1, got %v", got)
		}
	})
}

func TestCumulativeRatio(t *testing.T) {
	ratio, ok := CumulativeRatio(task("a", 10, 1), 3.5)
	if !ok || !almostEqual(ratio, 0.35) {
		t.Errorf("expected 0.35, got %v ok=%v", ratio, ok)
	}

	ratio, ok = CumulativeRatio(task("a", 10, 1), 25)
	if !ok || !almostEqual(ratio, 2.5) {
		t.Errorf("expected uncapped 2.5, got %v", ratio)
	}

	if _, ok := CumulativeRatio(task("a", 0, 1), 3); ok {
		t.Error("expected ok=false for zero benchmark")
	}
}

func TestCheckboxCumulativeTask(t *testing.T) {
	both := task("both", 5, 1)
	both.IsCheckbox = true
	both.IsCumulative = true

	if got := TaskRatio(both, 3); got != 1 {
		t.Errorf("expected checkbox ratio 1, got %v", got)
	}
	ratio, ok := CumulativeRatio(both, 3)
	if !ok || !almostEqual(ratio, 0.6) {
		t.Errorf("expected cumulative ratio 0.6, got %v", ratio)
	}
	if got := DailyScore([]models.TaskDefinition{both}, []models.DailyEntry{entry("both", 3)}); got != 0 {
		t.Errorf("expected cumulative task excluded from score, got %v", got)
	}
}

func TestQualifies(t *testing.T) {
	if !Qualifies(0.7, 0.7) {
		t.Error("expected score equal to threshold to qualify")
	}
	if Qualifies(0.69, 0.7) {
		t.Error("expected score below threshold not to qualify")
	}
}
