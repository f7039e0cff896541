// Package tracker is the command surface shared by the CLI and the TUI. Every command
// writes through the store and returns a fresh snapshot of the affected view.
package tracker

import (
	"strings"
	"time"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/constants"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/scoring"
	"github.com/julianstephens/dailytrack/internal/storage"
	"github.com/julianstephens/dailytrack/internal/validation"
)

type Tracker struct {
	store     storage.Provider
	analytics *analytics.Service
	clock     func() time.Time
	loc       *time.Location
	threshold float64
}

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithLocation sets the zone used to decide which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

func WithThreshold(threshold float64) Option {
	return func(t *Tracker) { t.threshold = threshold }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		analytics: analytics.New(store),
		clock:     time.Now,
		loc:       time.Local,
		threshold: constants.DefaultStreakThreshold,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Store() storage.Provider { return t.store }

func (t *Tracker) Analytics() *analytics.Service { return t.analytics }

func (t *Tracker) Threshold() float64 { return t.threshold }

func (t *Tracker) Location() *time.Location { return t.loc }

// Today is the current calendar day in the tracker's location.
func (t *Tracker) Today() models.Date {
	return models.DateOf(t.clock().In(t.loc))
}

// DaySnapshot is everything the day view shows for one date.
type DaySnapshot struct {
	Date          models.Date
	Progress      []models.TaskProgress
	Score         float64
	CurrentStreak int
	IsToday       bool
}

// Find returns the progress row for a task.
func (d DaySnapshot) Find(taskID string) (models.TaskProgress, bool) {
	for _, p := range d.Progress {
		if p.Task.ID == taskID {
			return p, true
		}
	}
	return models.TaskProgress{}, false
}

// Day loads the active tasks and their entries for date.
func (t *Tracker) Day(date models.Date) (DaySnapshot, error) {
	tasks, err := t.store.ListTasks(true)
	if err != nil {
		return DaySnapshot{}, err
	}
	entries, err := t.store.EntriesForDate(date)
	if err != nil {
		return DaySnapshot{}, err
	}

	byTask := make(map[string]models.DailyEntry, len(entries))
	for _, e := range entries {
		byTask[e.TaskID] = e
	}

	progress := make([]models.TaskProgress, 0, len(tasks))
	for _, task := range tasks {
		entry, ok := byTask[task.ID]
		if !ok {
			entry = models.DailyEntry{TaskID: task.ID, Date: date}
		}
		p := models.TaskProgress{Task: task, Entry: entry}
		if task.IsCumulative {
			total, err := t.store.CumulativeTotal(task.ID)
			if err != nil {
				return DaySnapshot{}, err
			}
			p.CumulativeTotal = &total
		}
		progress = append(progress, p)
	}

	today := t.Today()
	current, err := t.analytics.CurrentStreak(today, t.threshold)
	if err != nil {
		return DaySnapshot{}, err
	}

	return DaySnapshot{
		Date:          date,
		Progress:      progress,
		Score:         scoring.DailyScore(tasks, entries),
		CurrentStreak: current,
		IsToday:       date.Equal(today),
	}, nil
}

// existingEntry returns the stored entry for (task, date) or a fresh one.
func (t *Tracker) existingEntry(taskID string, date models.Date) (models.DailyEntry, error) {
	if _, err := t.store.GetTask(taskID); err != nil {
		return models.DailyEntry{}, err
	}
	entry, err := t.store.GetEntry(taskID, date)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return models.NewEntry(taskID, date, 0), nil
	}
	return entry, err
}

// SetValue records value for the task on date, keeping any notes.
func (t *Tracker) SetValue(date models.Date, taskID string, value float64) (DaySnapshot, error) {
	if err := validation.ValidateValue(value); err != nil {
		return DaySnapshot{}, err
	}
	entry, err := t.existingEntry(taskID, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	entry.Value = value
	if _, err := t.store.UpsertEntry(entry); err != nil {
		return DaySnapshot{}, err
	}
	return t.Day(date)
}

// AdjustValue adds delta to the current value, clamping at 0.
func (t *Tracker) AdjustValue(date models.Date, taskID string, delta float64) (DaySnapshot, error) {
	entry, err := t.existingEntry(taskID, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	value := entry.Value + delta
	if value < 0 {
		value = 0
	}
	return t.SetValue(date, taskID, value)
}

// SetNotes replaces the notes for the task on date. Blank notes are cleared.
func (t *Tracker) SetNotes(date models.Date, taskID string, notes string) (DaySnapshot, error) {
	entry, err := t.existingEntry(taskID, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	if strings.TrimSpace(notes) == "" {
		entry.Notes = nil
	} else {
		entry.Notes = &notes
	}
	if _, err := t.store.UpsertEntry(entry); err != nil {
		return DaySnapshot{}, err
	}
	return t.Day(date)
}

// ToggleCheckbox flips the value between 0 and 1.
func (t *Tracker) ToggleCheckbox(date models.Date, taskID string) (DaySnapshot, error) {
	entry, err := t.existingEntry(taskID, date)
	if err != nil {
		return DaySnapshot{}, err
	}
	value := 1.0
	if entry.Value > 0 {
		value = 0
	}
	return t.SetValue(date, taskID, value)
}
