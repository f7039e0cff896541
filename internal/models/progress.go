package models

// TaskProgress joins a task with its entry for one day.
type TaskProgress struct {
	Task  TaskDefinition
	Entry DailyEntry
	// CumulativeTotal is only set for cumulative tasks
	CumulativeTotal *float64
}

// DailyRatio is the uncapped ratio of the day's value to the benchmark.
func (p TaskProgress) DailyRatio() float64 {
	return p.Entry.CompletionRatio(p.Task.Benchmark)
}

// CumulativeRatio is the running total over the benchmark. ok is false for
// non-cumulative tasks and when the benchmark is not positive.
func (p TaskProgress) CumulativeRatio() (ratio float64, ok bool) {
	if !p.Task.IsCumulative || p.CumulativeTotal == nil || p.Task.Benchmark <= 0 {
		return 0, false
	}
	return *p.CumulativeTotal / p.Task.Benchmark, true
}

// Done reports whether a checkbox task is ticked.
func (p TaskProgress) Done() bool {
	return p.Entry.Value > 0
}

// DayScore is one point of a daily score series.
type DayScore struct {
	Date  Date    `json:"date"`
	Score float64 `json:"score"`
}

// TaskScore is one row of a per-date breakdown.
type TaskScore struct {
	Task  TaskDefinition `json:"task"`
	Value float64        `json:"value"`
	Ratio float64        `json:"ratio"`
}
