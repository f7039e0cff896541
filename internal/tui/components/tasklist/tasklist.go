package tasklist

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dailytrack/internal/models"
)

type AddTaskMsg struct{}

type DeleteTaskMsg struct {
	ID string
}

type EditTaskMsg struct {
	Task models.TaskDefinition
}

type ToggleActiveMsg struct {
	ID string
}

// MoveTaskMsg asks for the task at From to end up at To.
type MoveTaskMsg struct {
	From, To int
}

type Item struct {
	Task models.TaskDefinition
}

func (i Item) Title() string {
	if !i.Task.IsActive {
		return i.Task.Name + " (inactive)"
	}
	return i.Task.Name
}

func (i Item) Description() string {
	t := i.Task
	var desc string
	switch {
	case t.IsCheckbox:
		desc = "checkbox"
	case t.IsCumulative:
		desc = fmt.Sprintf("goal %s %s total", formatFloat(t.Benchmark), t.Unit)
	default:
		desc = fmt.Sprintf("%s %s/day", formatFloat(t.Benchmark), t.Unit)
	}
	return fmt.Sprintf("%s | weight %s", desc, formatFloat(t.Weight))
}

func (i Item) FilterValue() string { return i.Task.Name }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Active   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Active: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle active"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.TaskDefinition, width, height int) Model {
	l := list.New(toItems(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model
	// Indices must match the stored order for moves
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Active}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Active, keys.MoveUp, keys.MoveDown}
	}

	return Model{list: l, keys: keys}
}

func toItems(tasks []models.TaskDefinition) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t}
	}
	return items
}

func (m *Model) SetTasks(tasks []models.TaskDefinition) {
	m.list.SetItems(toItems(tasks))
}

// Select moves the cursor, clamped to the list.
func (m *Model) Select(index int) {
	n := len(m.list.Items())
	if n == 0 {
		return
	}
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}
	m.list.Select(index)
}

func (m Model) Index() int {
	return m.list.Index()
}

// Selected returns the highlighted task.
func (m Model) Selected() (models.TaskDefinition, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Task, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		index := m.list.Index()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if task, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTaskMsg{Task: task} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if task, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: task.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Active):
			if task, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleActiveMsg{ID: task.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.MoveUp):
			if index > 0 {
				return m, func() tea.Msg { return MoveTaskMsg{From: index, To: index - 1} }
			}
			return m, nil
		case key.Matches(msg, m.keys.MoveDown):
			if index < len(m.list.Items())-1 {
				return m, func() tea.Msg { return MoveTaskMsg{From: index, To: index + 1} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
