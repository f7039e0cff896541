// Package analytics derives score series, averages, breakdowns and streaks from stored entries.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/scoring"
	"github.com/julianstephens/dailytrack/internal/storage"
	"github.com/julianstephens/dailytrack/internal/streak"
)

// Period is a history window counted back from today.
type Period string

const (
	PeriodWeek    Period = constants.PeriodWeek
	PeriodMonth   Period = constants.PeriodMonth
	PeriodQuarter Period = constants.PeriodQuarter
	PeriodYear    Period = constants.PeriodYear
)

// Periods lists every period in display order.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

// Days is the number of days the period reaches back.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Title is the label shown in the CLI and TUI.
func (p Period) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePeriod accepts week, month, quarter or year.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (expected week, month, quarter or year)", s)
}

// Service answers aggregate queries against a store.
type Service struct {
	store storage.Provider
}

func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// DailyScoreSeries scores every date in [start, end] that has an entry for an
// active, non-cumulative task. Dates without one are omitted.
func (s *Service) DailyScoreSeries(start, end models.Date) ([]models.DayScore, error) {
	tasks, err := s.store.ListTasks(true)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.EntriesInRange(start, end)
	if err != nil {
		return nil, err
	}
	return scoreSeries(tasks, entries), nil
}

func scoreSeries(tasks []models.TaskDefinition, entries []models.DailyEntry) []models.DayScore {
	counted := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.CountsTowardScore() {
			counted[t.ID] = true
		}
	}

	byDate := make(map[models.Date][]models.DailyEntry)
	var dates []models.Date
	for _, e := range entries {
		if !counted[e.TaskID] {
			continue
		}
		if _, seen := byDate[e.Date]; !seen {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]models.DayScore, 0, len(dates))
	for _, d := range dates {
		series = append(series, models.DayScore{Date: d, Score: scoring.DailyScore(tasks, byDate[d])})
	}
	return series
}

// AverageScore is the mean score of the series, 0 when empty.
func AverageScore(series []models.DayScore) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, p := range series {
		sum += p.Score
	}
	return sum / float64(len(series))
}

// TaskBreakdown lists every task, active or not, with its value for the date and the
// uncapped ratio against its benchmark.
func (s *Service) TaskBreakdown(date models.Date) ([]models.TaskScore, error) {
	tasks, err := s.store.ListTasks(false)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.EntriesForDate(date)
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(entries))
	for _, e := range entries {
		values[e.TaskID] = e.Value
	}

	rows := make([]models.TaskScore, 0, len(tasks))
	for _, t := range tasks {
		v := values[t.ID]
		rows = append(rows, models.TaskScore{Task: t, Value: v, Ratio: scoring.DisplayRatio(t, v)})
	}
	return rows, nil
}

// FullSeries is the score series from the first to the last recorded date.
func (s *Service) FullSeries() ([]models.DayScore, error) {
	dates, err := s.store.DistinctEntryDates()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []models.DayScore{}, nil
	}
	return s.DailyScoreSeries(dates[0], dates[len(dates)-1])
}

func (s *Service) CurrentStreak(today models.Date, threshold float64) (int, error) {
	series, err := s.FullSeries()
	if err != nil {
		return 0, err
	}
	return streak.Current(series, today, threshold), nil
}

func (s *Service) BestStreak(threshold float64) (int, error) {
	series, err := s.FullSeries()
	if err != nil {
		return 0, err
	}
	return streak.Best(series, threshold), nil
}

// Summary is the history view for one period.
type Summary struct {
	Period        Period
	Start         models.Date
	End           models.Date
	Series        []models.DayScore
	Average       float64
	DaysTracked   int
	CurrentStreak int
	BestStreak    int
	Heatmap       map[models.Date]float64
	Tasks         []models.TaskDefinition
	TaskHistory   map[string][]models.DailyEntry
}

// Summary builds the period view ending at today. Streaks are computed over all history.
func (s *Service) Summary(period Period, today models.Date, threshold float64) (Summary, error) {
	start := today.AddDays(-period.Days())
	series, err := s.DailyScoreSeries(start, today)
	if err != nil {
		return Summary{}, err
	}

	full, err := s.FullSeries()
	if err != nil {
		return Summary{}, err
	}

	tasks, err := s.store.ListTasks(false)
	if err != nil {
		return Summary{}, err
	}

	history := make(map[string][]models.DailyEntry, len(tasks))
	for _, t := range tasks {
		entries, err := s.store.EntriesForTask(t.ID)
		if err != nil {
			return Summary{}, err
		}
		history[t.ID] = entries
	}

	heatmap := make(map[models.Date]float64, len(series))
	for _, p := range series {
		heatmap[p.Date] = p.Score
	}

	return Summary{
		Period:        period,
		Start:         start,
		End:           today,
		Series:        series,
		Average:       AverageScore(series),
		DaysTracked:   len(series),
		CurrentStreak: streak.Current(full, today, threshold),
		BestStreak:    streak.Best(full, threshold),
		Heatmap:       heatmap,
		Tasks:         tasks,
		TaskHistory:   history,
	}, nil
}

// CalendarWeeks lays out [start, end] as Sunday-first weeks. Cells before start
// and after end are zero dates.
func CalendarWeeks(start, end models.Date) [][7]models.Date {
	var weeks [][7]models.Date
	if end.Before(start) {
		return weeks
	}

	var week [7]models.Date
	col := int(start.Weekday())
	for _, d := range models.DateRange(start, end) {
		week[col] = d
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]models.Date{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
