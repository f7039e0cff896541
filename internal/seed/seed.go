// Package seed bootstraps an empty store with the starter task set and, optionally,
// a sample history.
package seed

import (
	"github.com/julianstephens/dailytrack/internal/constants"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage"
)

type starter struct {
	name       string
	benchmark  float64
	unit       string
	cumulative bool
	checkbox   bool
}

var starters = []starter{
	{name: "Nebenprojekt", benchmark: 1, unit: "hour"},
	{name: "Aktuarwissenschaft", benchmark: 1, unit: "hour", cumulative: true},
	{name: "Putzen", benchmark: 1, unit: "chore", checkbox: true},
	{name: "Bewerben", benchmark: 1, unit: "application"},
	{name: "Municipal Analytics", benchmark: 4, unit: "hours"},
	{name: "Training", benchmark: 1, unit: "workout", checkbox: true},
	{name: "Schach/Lesen", benchmark: 1, unit: "game/chapter"},
}

// history holds one value per starter task, in starter order.
var history = []struct {
	date   string
	values [7]float64
}{
	{"2026-01-05", [7]float64{0, 0, 0, 0, 4.25, 0, 0}},
	{"2026-01-06", [7]float64{0, 0, 1, 0, 6.25, 0, 1}},
	{"2026-01-07", [7]float64{0, 0, 0, 0, 0, 0, 1}},
	{"2026-01-08", [7]float64{0, 1, 1, 0, 5.75, 1, 1}},
	{"2026-01-09", [7]float64{0, 0, 1, 2, 0.75, 0, 1}},
	{"2026-01-12", [7]float64{0, 0, 1, 0, 0, 1, 1}},
	{"2026-01-13", [7]float64{2, 0, 0, 1, 0, 0, 2}},
	{"2026-01-14", [7]float64{0, 0, 1, 0, 0, 1, 1}},
	{"2026-01-15", [7]float64{0, 0, 0, 0, 0.5, 0, 1}},
	{"2026-01-16", [7]float64{1, 0, 2, 3, 1.5, 1, 1}},
	{"2026-01-19", [7]float64{2, 0, 1, 0, 0, 0, 1}},
	{"2026-01-20", [7]float64{0, 0, 1, 0, 0, 1, 1}},
	{"2026-01-21", [7]float64{0, 0, 1, 1, 4.5, 1, 0}},
	{"2026-01-22", [7]float64{0, 0, 0, 0, 3.25, 1, 1}},
	{"2026-01-23", [7]float64{2, 0, 0, 2, 4.0, 0, 1}},
}

// Record is one historical value keyed by task name.
type Record struct {
	TaskName string
	Date     models.Date
	Value    float64
}

// StarterTasks returns the starter set with fresh ids.
func StarterTasks() []models.TaskDefinition {
	tasks := make([]models.TaskDefinition, 0, len(starters))
	for i, s := range starters {
		t := models.NewTask(s.name)
		t.Benchmark = s.benchmark
		t.Unit = s.unit
		t.Weight = constants.DefaultWeight
		t.IsCumulative = s.cumulative
		t.IsCheckbox = s.checkbox
		t.SortOrder = i
		tasks = append(tasks, t)
	}
	return tasks
}

// History returns the sample history as (task name, date, value) records.
func History() []Record {
	records := make([]Record, 0, len(history)*len(starters))
	for _, day := range history {
		date := models.MustParseDate(day.date)
		for i, v := range day.values {
			records = append(records, Record{TaskName: starters[i].name, Date: date, Value: v})
		}
	}
	return records
}

// IfEmpty seeds the store when it has no tasks at all. It reports whether anything was written.
func IfEmpty(store storage.Provider, withHistory bool) (bool, error) {
	existing, err := store.ListTasks(false)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		logger.Debug("Store already has tasks, skipping seed", "count", len(existing))
		return false, nil
	}

	if err := store.UpsertTasks(StarterTasks()); err != nil {
		return false, err
	}
	logger.Info("Seeded starter tasks", "count", len(starters))

	if withHistory {
		if err := seedHistory(store, History()); err != nil {
			// Leave the store empty so the next run can seed again
			removeStarters(store)
			return false, err
		}
	}
	return true, nil
}

func removeStarters(store storage.Provider) {
	tasks, err := store.ListTasks(false)
	if err != nil {
		logger.Error("Failed to list tasks after seed failure", "error", err)
		return
	}
	for _, t := range tasks {
		if err := store.DeleteTask(t.ID); err != nil {
			logger.Error("Failed to remove seeded task", "task", t.Name, "error", err)
		}
	}
}

// seedHistory writes records in one batch. Records for tasks that do not exist are skipped.
func seedHistory(store storage.Provider, records []Record) error {
	ids := make(map[string]string)
	entries := make([]models.DailyEntry, 0, len(records))
	for _, r := range records {
		id, ok := ids[r.TaskName]
		if !ok {
			task, err := store.GetTaskByName(r.TaskName)
			if apperrors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Skipping history for unknown task", "task", r.TaskName, "date", r.Date.String())
				continue
			}
			if err != nil {
				return err
			}
			id = task.ID
			ids[r.TaskName] = id
		}
		entries = append(entries, models.NewEntry(id, r.Date, r.Value))
	}

	if err := store.UpsertEntries(entries); err != nil {
		return err
	}
	logger.Info("Seeded history entries", "count", len(entries))
	return nil
}
