package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/scoring"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateDay:
		content = docStyle.Render(m.dayModel.View())
	case StateHistory:
		content = docStyle.Render(m.viewHistory())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateEditing:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.err != nil {
		parts = append(parts, errorStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var rendered []string
	for _, t := range tabs {
		active := m.state == t.state ||
			(t.state == StateTasks && (m.state == StateEditing || m.state == StateConfirmDelete))
		if active {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.taskToDelete != nil {
		name = m.taskToDelete.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q?", name)),
			"",
			"All of its entries will be removed.",
			"",
			"[y] Yes   [n] No",
		),
	)
}

func (m Model) viewHistory() string {
	if m.summary == nil {
		return "No history loaded."
	}
	s := m.summary

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s: %s to %s", s.Period.Title(), s.Start, s.End)))
	b.WriteString(mutedStyle.Render("  (p to change)"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Average score   %.0f%%\n", s.Average*100)
	fmt.Fprintf(&b, "Days tracked    %d\n", s.DaysTracked)
	fmt.Fprintf(&b, "Current streak  %d\n", s.CurrentStreak)
	fmt.Fprintf(&b, "Best streak     %d\n\n", s.BestStreak)

	b.WriteString(renderHeatmap(*s, m.tracker.Threshold()))
	b.WriteString("\n")
	b.WriteString(renderCumulative(*s))
	return b.String()
}

// heatLevel buckets a score into the heatStyles index. 0 is reserved for untracked days.
func heatLevel(score float64, tracked bool) int {
	switch {
	case !tracked:
		return 0
	case score >= 0.9:
		return 4
	case score >= 0.7:
		return 3
	case score >= 0.4:
		return 2
	default:
		return 1
	}
}

func renderHeatmap(s analytics.Summary, threshold float64) string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render(" Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")
	for _, week := range analytics.CalendarWeeks(s.Start, s.End) {
		for _, d := range week {
			if d.IsZero() {
				b.WriteString("   ")
				continue
			}
			score, tracked := s.Heatmap[d]
			cell := "■"
			if tracked && scoring.Qualifies(score, threshold) {
				cell = "◆"
			}
			b.WriteString("  ")
			b.WriteString(heatStyles[heatLevel(score, tracked)].Render(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" ◆ streak day (>= %.0f%%)", threshold*100)))
	b.WriteString("\n")
	return b.String()
}

// renderCumulative lists running totals for cumulative goals.
func renderCumulative(s analytics.Summary) string {
	var b strings.Builder
	for _, t := range s.Tasks {
		if !t.IsCumulative {
			continue
		}
		var total float64
		for _, e := range s.TaskHistory[t.ID] {
			total += e.Value
		}
		ratio, ok := scoring.CumulativeRatio(t, total)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%-24s %g/%g %s (%.0f%%)\n", t.Name, total, t.Benchmark, t.Unit, ratio*100)
	}
	if b.Len() == 0 {
		return ""
	}
	return headerStyle.Render("Cumulative goals") + "\n" + b.String()
}
