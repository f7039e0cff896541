package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/models"
)

type HistoryCmd struct {
	Period  string `short:"p" help:"History window: week, month, quarter or year. Defaults to the default_period setting."`
	Heatmap bool   `help:"Show a calendar heatmap of daily scores."`
	Task    string `short:"t" help:"Only show entries for this task (id or name)."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	name := c.Period
	if name == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		name = settings.DefaultPeriod
	}
	period, err := analytics.ParsePeriod(name)
	if err != nil {
		return err
	}

	summary, err := tr.Analytics().Summary(period, tr.Today(), tr.Threshold())
	if err != nil {
		return fmt.Errorf("failed to build history: %w", err)
	}

	if c.Task != "" {
		task, err := tr.ResolveTask(c.Task)
		if err != nil {
			return fmt.Errorf("failed to find task %q: %w", c.Task, err)
		}
		renderTaskHistory(ctx, summary, task)
		return nil
	}

	ctx.Printf("%s: %s to %s\n\n", period.Title(), summary.Start, summary.End)
	ctx.Printf("  Average score:  %s\n", cli.FormatPercent(summary.Average))
	ctx.Printf("  Days tracked:   %d\n", summary.DaysTracked)
	ctx.Printf("  Current streak: %d\n", summary.CurrentStreak)
	ctx.Printf("  Best streak:    %d\n", summary.BestStreak)

	if len(summary.Series) == 0 {
		ctx.Println("\nNo entries in this period.")
		return nil
	}

	if c.Heatmap {
		ctx.Println()
		renderHeatmap(ctx, summary)
		return nil
	}

	ctx.Println()
	for _, p := range summary.Series {
		marker := " "
		if p.Score >= tr.Threshold() {
			marker = "✓"
		}
		ctx.Printf("  %s %s  %s %4s %s\n", p.Date, p.Date.Weekday().String()[:3], cli.Bar(p.Score, 20), cli.FormatPercent(p.Score), marker)
	}
	return nil
}

func renderTaskHistory(ctx *cli.Context, summary analytics.Summary, task models.TaskDefinition) {
	ctx.Printf("%s (%s to %s)\n\n", task.Name, summary.Start, summary.End)

	shown := 0
	total := 0.0
	for _, e := range summary.TaskHistory[task.ID] {
		if e.Date.Before(summary.Start) || e.Date.After(summary.End) {
			continue
		}
		line := fmt.Sprintf("  %s  %6s %s", e.Date, cli.FormatNumber(e.Value), task.Unit)
		if notes := e.NotesText(); notes != "" {
			line += "  " + notes
		}
		ctx.Println(line)
		total += e.Value
		shown++
	}

	if shown == 0 {
		ctx.Println("  No entries in this period.")
		return
	}
	ctx.Printf("\n  %d entries, total %s %s\n", shown, cli.FormatNumber(total), task.Unit)
}

// heatCell maps a score to a shade, with "·" for untracked days.
func heatCell(score float64, tracked bool) string {
	switch {
	case !tracked:
		return "·"
	case score >= 0.9:
		return "█"
	case score >= 0.7:
		return "▓"
	case score >= 0.4:
		return "▒"
	default:
		return "░"
	}
}

func renderHeatmap(ctx *cli.Context, summary analytics.Summary) {
	ctx.Println("  Su Mo Tu We Th Fr Sa")
	for _, week := range analytics.CalendarWeeks(summary.Start, summary.End) {
		var b strings.Builder
		b.WriteString(" ")
		for _, d := range week {
			if d.IsZero() {
				b.WriteString("   ")
				continue
			}
			score, ok := summary.Heatmap[d]
			b.WriteString("  ")
			b.WriteString(heatCell(score, ok))
		}
		ctx.Println(b.String())
	}
	ctx.Println("\n  · none  ░ <40%  ▒ <70%  ▓ <90%  █ 90%+")
}
