package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/tracker"
	"github.com/julianstephens/dailytrack/internal/tui/components/day"
	"github.com/julianstephens/dailytrack/internal/tui/components/tasklist"
)

// Used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 20
)

type SessionState int

const (
	StateDay SessionState = iota
	StateHistory
	StateTasks
	StateEditing
	StateConfirmDelete
)

// tabs are the states reachable with tab / shift+tab, in order.
var tabs = []struct {
	state SessionState
	title string
}{
	{StateDay, "Day"},
	{StateHistory, "History"},
	{StateTasks, "Tasks"},
}

type TaskFormModel struct {
	Name       string
	Benchmark  string
	Unit       string
	Weight     string
	Cumulative bool
	Checkbox   bool
	Active     bool
}

func newTaskFormModel(t models.TaskDefinition) *TaskFormModel {
	return &TaskFormModel{
		Name:       t.Name,
		Benchmark:  strconv.FormatFloat(t.Benchmark, 'f', -1, 64),
		Unit:       t.Unit,
		Weight:     strconv.FormatFloat(t.Weight, 'f', -1, 64),
		Cumulative: t.IsCumulative,
		Checkbox:   t.IsCheckbox,
		Active:     t.IsActive,
	}
}

// apply copies the form values onto task. The form validators guarantee the numbers parse.
func (f *TaskFormModel) apply(task *models.TaskDefinition) {
	task.Name = strings.TrimSpace(f.Name)
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.Benchmark), 64); err == nil {
		task.Benchmark = v
	}
	task.Unit = strings.TrimSpace(f.Unit)
	if v, err := strconv.ParseFloat(strings.TrimSpace(f.Weight), 64); err == nil {
		task.Weight = v
	}
	task.IsCumulative = f.Cumulative
	task.IsCheckbox = f.Checkbox
	task.IsActive = f.Active
}

type Model struct {
	tracker      *tracker.Tracker
	state        SessionState
	keys         KeyMap
	help         help.Model
	dayModel     day.Model
	taskList     tasklist.Model
	date         models.Date
	period       analytics.Period
	summary      *analytics.Summary
	form         *huh.Form
	taskForm     *TaskFormModel
	editingTask  *models.TaskDefinition
	isNewTask    bool
	taskToDelete *models.TaskDefinition
	err          error
	quitting     bool
	width        int
	height       int
}

// NewModel opens on today's day view. period is the initial history window.
func NewModel(tr *tracker.Tracker, period analytics.Period) Model {
	if period == "" {
		period = analytics.PeriodMonth
	}

	m := Model{
		tracker:  tr,
		state:    StateDay,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		dayModel: day.New(defaultWidth, defaultHeight),
		taskList: tasklist.New(nil, defaultWidth, defaultHeight),
		date:     tr.Today(),
		period:   period,
	}

	m.loadDay()
	m.loadTasks()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) loadDay() {
	snap, err := m.tracker.Day(m.date)
	if err != nil {
		m.err = fmt.Errorf("load day: %w", err)
		return
	}
	m.dayModel.SetSnapshot(snap)
}

func (m *Model) loadTasks() {
	tasks, err := m.tracker.Tasks()
	if err != nil {
		m.err = fmt.Errorf("load tasks: %w", err)
		return
	}
	m.taskList.SetTasks(tasks)
}

func (m *Model) loadSummary() {
	summary, err := m.tracker.Analytics().Summary(m.period, m.tracker.Today(), m.tracker.Threshold())
	if err != nil {
		m.err = fmt.Errorf("load history: %w", err)
		return
	}
	m.summary = &summary
}

// invalidate drops cached views after a write.
func (m *Model) invalidate() {
	m.summary = nil
	m.loadDay()
}

func (m *Model) nextPeriod() {
	for i, p := range analytics.Periods {
		if p == m.period {
			m.period = analytics.Periods[(i+1)%len(analytics.Periods)]
			m.summary = nil
			return
		}
	}
	m.period = analytics.PeriodMonth
	m.summary = nil
}

func validateFloat(minExclusive bool) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if minExclusive && v <= 0 {
			return fmt.Errorf("must be greater than 0")
		}
		if v < 0 {
			return fmt.Errorf("must not be negative")
		}
		return nil
	}
}

func newTaskForm(f *TaskFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Benchmark").
				Description("Target value per day, or the total goal for cumulative tasks").
				Value(&f.Benchmark).
				Validate(validateFloat(true)),
			huh.NewInput().
				Title("Unit").
				Value(&f.Unit),
			huh.NewInput().
				Title("Weight").
				Value(&f.Weight).
				Validate(validateFloat(false)),
			huh.NewConfirm().
				Title("Cumulative").
				Value(&f.Cumulative),
			huh.NewConfirm().
				Title("Checkbox").
				Value(&f.Checkbox),
			huh.NewConfirm().
				Title("Active").
				Value(&f.Active),
		),
	).WithShowHelp(true)
}
