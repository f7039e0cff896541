// Package scoring turns recorded values into completion ratios and weighted daily scores.
package scoring

import (
	"math"

	"github.com/julianstephens/dailytrack/internal/models"
)

// TaskRatio is the capped completion ratio in [0, 1] used for scoring.
// Checkbox tasks count fully once any positive value is recorded.
func TaskRatio(task models.TaskDefinition, value float64) float64 {
	if task.IsCheckbox {
		if value > 0 {
			return 1
		}
		return 0
	}
	if task.Benchmark <= 0 {
		return 0
	}
	return math.Max(0, math.Min(value/task.Benchmark, 1))
}

// DisplayRatio is value/benchmark without the cap, for progress display.
func DisplayRatio(task models.TaskDefinition, value float64) float64 {
	if task.Benchmark <= 0 {
		return 0
	}
	return value / task.Benchmark
}

// DailyScore is the weighted mean of capped ratios over the active, non-cumulative tasks.
// A task without an entry contributes 0. Returns 0 when the total weight is 0.
func DailyScore(tasks []models.TaskDefinition, entries []models.DailyEntry) float64 {
	values := make(map[string]float64, len(entries))
	for _, e := range entries {
		values[e.TaskID] = e.Value
	}

	var weighted, totalWeight float64
	for _, t := range tasks {
		if !t.CountsTowardScore() {
			continue
		}
		weighted += TaskRatio(t, values[t.ID]) * t.Weight
		totalWeight += t.Weight
	}

	if totalWeight <= 0 {
		return 0
	}
	return weighted / totalWeight
}

// CumulativeRatio is the running total over the benchmark, uncapped.
// ok is false when the benchmark is not positive.
func CumulativeRatio(task models.TaskDefinition, total float64) (ratio float64, ok bool) {
	if task.Benchmark <= 0 {
		return 0, false
	}
	return total / task.Benchmark, true
}

// Qualifies reports whether a day's score counts toward a streak.
func Qualifies(score, threshold float64) bool {
	return score >= threshold
}
