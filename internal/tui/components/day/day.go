// Package day renders one day's tasks with a cursor and the composite score bar.
package day

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/scoring"
	"github.com/julianstephens/dailytrack/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(24)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Width(24)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const barWidth = 20

type Model struct {
	viewport viewport.Model
	score    progress.Model
	row      progress.Model
	snapshot *tracker.DaySnapshot
	cursor   int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		score:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		row:      progress.New(progress.WithSolidFill("63"), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.snapshot == nil {
		return "Loading..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetSnapshot replaces the day shown and keeps the cursor in range.
func (m *Model) SetSnapshot(snap tracker.DaySnapshot) {
	m.snapshot = &snap
	m.clampCursor()
	m.render()
}

func (m Model) Cursor() int {
	return m.cursor
}

// MoveCursor shifts the selection by delta rows.
func (m *Model) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.render()
}

// Selected returns the row under the cursor.
func (m Model) Selected() (models.TaskProgress, bool) {
	if m.snapshot == nil || len(m.snapshot.Progress) == 0 {
		return models.TaskProgress{}, false
	}
	return m.snapshot.Progress[m.cursor], true
}

func (m *Model) clampCursor() {
	n := 0
	if m.snapshot != nil {
		n = len(m.snapshot.Progress)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) render() {
	if m.snapshot == nil {
		m.viewport.SetContent("")
		return
	}
	snap := m.snapshot

	var b strings.Builder
	title := fmt.Sprintf("%s %s", snap.Date.Weekday(), snap.Date)
	if snap.IsToday {
		title += " (today)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Score  %s\n", m.score.ViewAs(snap.Score))
	fmt.Fprintf(&b, "Streak %d day(s)\n\n", snap.CurrentStreak)

	if len(snap.Progress) == 0 {
		b.WriteString("No active tasks. Add some on the Tasks tab.")
		m.viewport.SetContent(b.String())
		return
	}

	for i, p := range snap.Progress {
		style := nameStyle
		marker := "  "
		if i == m.cursor {
			style = selectedStyle
			marker = "> "
		}
		b.WriteString(marker)
		b.WriteString(style.Render(p.Task.Name))
		b.WriteString(m.renderValue(p))
		b.WriteString("\n")
		if notes := p.Entry.NotesText(); notes != "" {
			b.WriteString("    " + notesStyle.Render(notes) + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}

func (m Model) renderValue(p models.TaskProgress) string {
	if p.Task.IsCheckbox {
		if p.Done() {
			return doneStyle.Render("[x]")
		}
		return "[ ]"
	}

	value := fmt.Sprintf("%s/%s %s", formatFloat(p.Entry.Value), formatFloat(p.Task.Benchmark), p.Task.Unit)
	line := valueStyle.Render(value) + m.row.ViewAs(scoring.TaskRatio(p.Task, p.Entry.Value)) +
		fmt.Sprintf(" %3.0f%%", scoring.DisplayRatio(p.Task, p.Entry.Value)*100)
	if total, ok := p.CumulativeRatio(); ok {
		line += fmt.Sprintf("  total %s (%.0f%%)", formatFloat(*p.CumulativeTotal), total*100)
	}
	return line
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
