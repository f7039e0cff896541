package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage/sqlite"
	"github.com/julianstephens/dailytrack/internal/tracker"
	"github.com/julianstephens/dailytrack/internal/tui/components/tasklist"
)

var today = models.MustParseDate("2026-01-09")

func setupModel(t *testing.T) (Model, *sqlite.Store, []models.TaskDefinition) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	deep := models.NewTask("Deep Work")
	deep.Benchmark = 2
	deep.Unit = "hours"
	stretch := models.NewTask("Stretch")
	stretch.IsCheckbox = true
	stretch.SortOrder = 1
	tasks := []models.TaskDefinition{deep, stretch}
	if err := store.UpsertTasks(tasks); err != nil {
		t.Fatalf("failed to add tasks: %v", err)
	}

	tr := tracker.New(store,
		tracker.WithClock(func() time.Time { return time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC) }),
		tracker.WithLocation(time.UTC),
	)
	m := NewModel(tr, analytics.PeriodWeek)
	return m, store, tasks
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewModel(t *testing.T) {
	m, _, _ := setupModel(t)

	if m.state != StateDay {
		t.Errorf("expected day tab, got %v", m.state)
	}
	if !m.date.Equal(today) {
		t.Errorf("expected %s, got %s", today, m.date)
	}
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	if p, ok := m.dayModel.Selected(); !ok || p.Task.Name != "Deep Work" {
		t.Errorf("expected Deep Work selected, got %+v", p.Task)
	}

	view := m.View()
	for _, want := range []string{"Day", "History", "Tasks", "Deep Work", "Stretch"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDayValueKeys(t *testing.T) {
	m, store, tasks := setupModel(t)

	m = send(m, runes("+"), runes("+"), runes("+"), runes("-"))
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	entry, err := store.GetEntry(tasks[0].ID, today)
	if err != nil {
		t.Fatalf("expected entry: %v", err)
	}
	if entry.Value != 1 {
		t.Errorf("expected 1 after three steps up and one down, got %v", entry.Value)
	}

	// Decrement never goes below zero
	m = send(m, runes("-"), runes("-"), runes("-"))
	entry, _ = store.GetEntry(tasks[0].ID, today)
	if entry.Value != 0 {
		t.Errorf("expected value clamped at 0, got %v", entry.Value)
	}

	// Move to the checkbox and toggle it
	m = send(m, runes("j"), runes(" "))
	entry, err = store.GetEntry(tasks[1].ID, today)
	if err != nil {
		t.Fatalf("expected checkbox entry: %v", err)
	}
	if entry.Value != 1 {
		t.Errorf("expected checkbox done, got %v", entry.Value)
	}
	m = send(m, runes(" "))
	entry, _ = store.GetEntry(tasks[1].ID, today)
	if entry.Value != 0 {
		t.Errorf("expected checkbox cleared, got %v", entry.Value)
	}
}

func TestDayNavigation(t *testing.T) {
	m, store, tasks := setupModel(t)

	m = send(m, runes("h"), runes("+"))
	yesterday := today.AddDays(-1)
	if !m.date.Equal(yesterday) {
		t.Fatalf("expected %s, got %s", yesterday, m.date)
	}
	if _, err := store.GetEntry(tasks[0].ID, yesterday); err != nil {
		t.Errorf("expected entry on %s: %v", yesterday, err)
	}

	m = send(m, runes("l"), runes("l"), runes("t"))
	if !m.date.Equal(today) {
		t.Errorf("expected today after 't', got %s", m.date)
	}
}

func TestTabsAndHistory(t *testing.T) {
	m, _, _ := setupModel(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHistory {
		t.Fatalf("expected history tab, got %v", m.state)
	}
	if m.summary == nil || m.summary.Period != analytics.PeriodWeek {
		t.Fatalf("expected week summary, got %+v", m.summary)
	}

	m = send(m, runes("p"))
	if m.period != analytics.PeriodMonth || m.summary.Period != analytics.PeriodMonth {
		t.Errorf("expected month after cycling, got %s", m.period)
	}
	if !strings.Contains(m.View(), "Month: 2025-12-10 to 2026-01-09") {
		t.Errorf("unexpected history view:\n%s", m.View())
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateTasks {
		t.Errorf("expected tasks tab, got %v", m.state)
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateDay {
		t.Errorf("expected day tab, got %v", m.state)
	}
}

func TestTaskMessages(t *testing.T) {
	m, store, tasks := setupModel(t)
	m.state = StateTasks

	t.Run("move", func(t *testing.T) {
		m = send(m, tasklist.MoveTaskMsg{From: 1, To: 0})
		if m.err != nil {
			t.Fatalf("unexpected error: %v", m.err)
		}
		all, _ := store.ListTasks(false)
		if all[0].ID != tasks[1].ID {
			t.Errorf("expected Stretch first, got %s", all[0].Name)
		}
		if m.taskList.Index() != 0 {
			t.Errorf("expected cursor to follow the task, got %d", m.taskList.Index())
		}
	})

	t.Run("toggle active", func(t *testing.T) {
		m = send(m, tasklist.ToggleActiveMsg{ID: tasks[0].ID})
		task, _ := store.GetTask(tasks[0].ID)
		if task.IsActive {
			t.Error("expected task to be inactive")
		}
		if _, ok := m.dayModel.Selected(); !ok {
			t.Error("expected the remaining task in the day view")
		}
	})

	t.Run("delete declined", func(t *testing.T) {
		m = send(m, tasklist.DeleteTaskMsg{ID: tasks[1].ID})
		if m.state != StateConfirmDelete {
			t.Fatalf("expected confirmation, got %v", m.state)
		}
		if !strings.Contains(m.View(), `Delete "Stretch"?`) {
			t.Errorf("unexpected confirm view:\n%s", m.View())
		}
		m = send(m, runes("n"))
		if _, err := store.GetTask(tasks[1].ID); err != nil {
			t.Errorf("task should still exist: %v", err)
		}
	})

	t.Run("delete confirmed", func(t *testing.T) {
		m = send(m, tasklist.DeleteTaskMsg{ID: tasks[1].ID}, runes("y"))
		if m.state != StateTasks {
			t.Errorf("expected tasks tab, got %v", m.state)
		}
		if _, err := store.GetTask(tasks[1].ID); err == nil {
			t.Error("expected task to be deleted")
		}
	})
}

func TestTaskForm(t *testing.T) {
	m, _, _ := setupModel(t)
	m.state = StateTasks

	m = send(m, tasklist.AddTaskMsg{})
	if m.state != StateEditing || m.form == nil {
		t.Fatalf("expected the task form, got %v", m.state)
	}
	if !m.isNewTask {
		t.Error("expected a new task")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateTasks {
		t.Errorf("expected esc to return to tasks, got %v", m.state)
	}
}

func TestTaskFormModelApply(t *testing.T) {
	task := models.NewTask("Reading")
	form := newTaskFormModel(task)
	form.Name = "  Reading more "
	form.Benchmark = "30"
	form.Unit = "pages"
	form.Weight = "2.5"
	form.Cumulative = true

	form.apply(&task)
	if task.Name != "Reading more" || task.Benchmark != 30 || task.Unit != "pages" || task.Weight != 2.5 || !task.IsCumulative {
		t.Errorf("unexpected task after apply: %+v", task)
	}
}

func TestValidateFloat(t *testing.T) {
	tests := []struct {
		input    string
		positive bool
		wantErr  bool
	}{
		{"1", true, false},
		{"0", true, true},
		{"0", false, false},
		{"-1", false, true},
		{"abc", false, true},
		{" 2.5 ", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateFloat(tt.positive)(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFloat(%v)(%q) error = %v, wantErr %v", tt.positive, tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := setupModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quitting")
	}
}
