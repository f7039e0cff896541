package reports

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/scoring"
)

type BreakdownCmd struct {
	Date string `arg:"" optional:"" help:"Date to break down (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *BreakdownCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := cli.ParseDateArg(c.Date, tr.Today())
	if err != nil {
		return err
	}

	rows, err := tr.Analytics().TaskBreakdown(date)
	if err != nil {
		return fmt.Errorf("failed to build breakdown: %w", err)
	}
	if len(rows) == 0 {
		ctx.Println("No tasks found.")
		return nil
	}

	ctx.Printf("Breakdown for %s\n\n", date)
	for _, row := range rows {
		flags := ""
		switch {
		case !row.Task.IsActive:
			flags = " (inactive)"
		case row.Task.IsCumulative:
			flags = " (cumulative)"
		}
		ctx.Printf("  %-32s %6s/%-6s %5s%s\n",
			row.Task.Name,
			cli.FormatNumber(row.Value),
			cli.FormatNumber(row.Task.Benchmark),
			cli.FormatPercent(row.Ratio),
			flags,
		)
	}

	day, err := tr.Day(date)
	if err != nil {
		return err
	}
	ctx.Printf("\n  Daily score: %s", cli.FormatPercent(day.Score))
	if scoring.Qualifies(day.Score, tr.Threshold()) {
		ctx.Printf(" ✓")
	}
	ctx.Println()
	return nil
}
