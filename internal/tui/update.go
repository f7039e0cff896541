package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/tracker"
	"github.com/julianstephens/dailytrack/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		// Tabs, help and the error line take the rest
		m.dayModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.taskList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if cmd, handled := m.handleTaskMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		}
	}

	switch m.state {
	case StateDay:
		return m.updateDay(msg)
	case StateHistory:
		return m.updateHistory(msg)
	case StateTasks:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchTab(delta int) {
	current := 0
	for i, t := range tabs {
		if t.state == m.state {
			current = i
		}
	}
	next := (current + delta + len(tabs)) % len(tabs)
	m.state = tabs[next].state

	switch m.state {
	case StateDay:
		m.loadDay()
	case StateHistory:
		if m.summary == nil {
			m.loadSummary()
		}
	case StateTasks:
		m.loadTasks()
	}
}

func (m Model) updateDay(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.dayModel, cmd = m.dayModel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.dayModel.MoveCursor(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.dayModel.MoveCursor(1)
	case key.Matches(keyMsg, m.keys.PrevDay):
		m.date = m.date.AddDays(-1)
		m.loadDay()
	case key.Matches(keyMsg, m.keys.NextDay):
		m.date = m.date.AddDays(1)
		m.loadDay()
	case key.Matches(keyMsg, m.keys.Today):
		m.date = m.tracker.Today()
		m.loadDay()
	case key.Matches(keyMsg, m.keys.Inc):
		m.adjustSelected(constants.ValueStep)
	case key.Matches(keyMsg, m.keys.Dec):
		m.adjustSelected(-constants.ValueStep)
	case key.Matches(keyMsg, m.keys.Toggle):
		if p, ok := m.dayModel.Selected(); ok && p.Task.IsCheckbox {
			m.apply(m.tracker.ToggleCheckbox(m.date, p.Task.ID))
		}
	}
	return m, nil
}

// adjustSelected steps the selected value. Checkbox tasks are set to 1 or 0.
func (m *Model) adjustSelected(delta float64) {
	p, ok := m.dayModel.Selected()
	if !ok {
		return
	}
	if p.Task.IsCheckbox {
		value := 1.0
		if delta < 0 {
			value = 0
		}
		m.apply(m.tracker.SetValue(m.date, p.Task.ID, value))
		return
	}
	m.apply(m.tracker.AdjustValue(m.date, p.Task.ID, delta))
}

// apply shows the snapshot returned by a tracker write.
func (m *Model) apply(snap tracker.DaySnapshot, err error) {
	if err != nil {
		logger.Warn("update failed", "date", m.date.String(), "error", err)
		m.err = err
		return
	}
	m.summary = nil
	m.dayModel.SetSnapshot(snap)
}

func (m Model) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Period) {
		m.nextPeriod()
		m.loadSummary()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateTasks
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.taskForm.apply(m.editingTask)
		var err error
		if m.isNewTask {
			_, err = m.tracker.AddTask(*m.editingTask)
		} else {
			_, err = m.tracker.EditTask(*m.editingTask)
		}
		if err != nil {
			logger.Warn("failed to save task", "name", m.editingTask.Name, "error", err)
			m.err = err
		} else {
			m.invalidate()
		}
		m.loadTasks()
		m.state = StateTasks
	case huh.StateAborted:
		m.state = StateTasks
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if m.taskToDelete != nil {
			if _, err := m.tracker.DeleteTask(m.taskToDelete.ID); err != nil {
				logger.Warn("failed to delete task", "id", m.taskToDelete.ID, "error", err)
				m.err = err
			} else {
				m.invalidate()
			}
		}
		m.taskToDelete = nil
		m.loadTasks()
		m.state = StateTasks
	case "n", "N", "esc", "q":
		m.taskToDelete = nil
		m.state = StateTasks
	}
	return m, nil
}

// handleTaskMessages reacts to requests emitted by the task list.
func (m *Model) handleTaskMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		task := models.NewTask("")
		m.editingTask = &task
		m.isNewTask = true
		m.taskForm = newTaskFormModel(task)
		m.form = newTaskForm(m.taskForm)
		m.state = StateEditing
		return m.form.Init(), true

	case tasklist.EditTaskMsg:
		task := msg.Task
		m.editingTask = &task
		m.isNewTask = false
		m.taskForm = newTaskFormModel(task)
		m.form = newTaskForm(m.taskForm)
		m.state = StateEditing
		return m.form.Init(), true

	case tasklist.DeleteTaskMsg:
		task, err := m.tracker.Store().GetTask(msg.ID)
		if err != nil {
			m.err = err
			return nil, true
		}
		m.taskToDelete = &task
		m.state = StateConfirmDelete
		return nil, true

	case tasklist.ToggleActiveMsg:
		if _, err := m.tracker.ToggleActive(msg.ID); err != nil {
			m.err = err
		} else {
			m.invalidate()
		}
		m.loadTasks()
		return nil, true

	case tasklist.MoveTaskMsg:
		if _, err := m.tracker.MoveTask(msg.From, msg.To); err != nil {
			m.err = err
			return nil, true
		}
		m.invalidate()
		m.loadTasks()
		m.taskList.Select(msg.To)
		return nil, true
	}
	return nil, false
}
