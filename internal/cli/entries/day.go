package entries

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/scoring"
	"github.com/julianstephens/dailytrack/internal/tracker"
)

const barWidth = 10

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := cli.ParseDateArg(c.Date, tr.Today())
	if err != nil {
		return err
	}

	snap, err := tr.Day(date)
	if err != nil {
		return fmt.Errorf("failed to load day: %w", err)
	}
	renderDay(ctx, snap)
	return nil
}

func renderDay(ctx *cli.Context, snap tracker.DaySnapshot) {
	title := fmt.Sprintf("%s %s", snap.Date.Weekday(), snap.Date)
	if snap.IsToday {
		title += " (today)"
	}
	ctx.Println(title)
	ctx.Printf("Score: %s %s   Streak: %d day(s)\n\n", cli.Bar(snap.Score, barWidth), cli.FormatPercent(snap.Score), snap.CurrentStreak)

	if len(snap.Progress) == 0 {
		ctx.Printf("No active tasks. Add one with '%s task add'.\n", constants.AppName)
		return
	}

	for _, p := range snap.Progress {
		ctx.Println(formatProgress(p))
		if notes := p.Entry.NotesText(); notes != "" {
			ctx.Printf("      %s\n", notes)
		}
	}
}

func formatProgress(p models.TaskProgress) string {
	task := p.Task
	if task.IsCheckbox && !task.IsCumulative {
		mark := "[ ]"
		if p.Done() {
			mark = "[x]"
		}
		return fmt.Sprintf("  %s %-28s", mark, task.Name)
	}

	line := fmt.Sprintf("  %-32s %6s/%-6s %-12s %s %s",
		task.Name,
		cli.FormatNumber(p.Entry.Value),
		cli.FormatNumber(task.Benchmark),
		task.Unit,
		cli.Bar(scoring.TaskRatio(task, p.Entry.Value), barWidth),
		cli.FormatPercent(p.DailyRatio()),
	)
	if ratio, ok := p.CumulativeRatio(); ok {
		line += fmt.Sprintf("  (total %s, %s of goal)", cli.FormatNumber(*p.CumulativeTotal), cli.FormatPercent(ratio))
	}
	return line
}
