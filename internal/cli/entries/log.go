package entries

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/tracker"
)

type LogCmd struct {
	Task  string  `arg:"" help:"Task id or name."`
	Value float64 `arg:"" help:"Value to record (hours, count, or 1 for done)."`
	Date  string  `short:"d" help:"Date to record (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Note  *string `short:"n" help:"Notes for the entry. An empty string clears them."`
	Add   bool    `short:"a" help:"Add the value to the current one instead of replacing it."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := cli.ParseDateArg(c.Date, tr.Today())
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %q: %w", c.Task, err)
	}

	var snap tracker.DaySnapshot
	if c.Add {
		snap, err = tr.AdjustValue(date, task.ID, c.Value)
	} else {
		snap, err = tr.SetValue(date, task.ID, c.Value)
	}
	if err != nil {
		return fmt.Errorf("failed to record value: %w", err)
	}

	if c.Note != nil {
		if snap, err = tr.SetNotes(date, task.ID, *c.Note); err != nil {
			return fmt.Errorf("failed to save notes: %w", err)
		}
	}

	p, _ := snap.Find(task.ID)
	ctx.Printf("✓ %s on %s: %s %s\n\n", task.Name, date, cli.FormatNumber(p.Entry.Value), task.Unit)
	renderDay(ctx, snap)
	return nil
}

type CheckCmd struct {
	Task string `arg:"" help:"Task id or name."`
	Date string `short:"d" help:"Date to toggle (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := cli.ParseDateArg(c.Date, tr.Today())
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %q: %w", c.Task, err)
	}

	snap, err := tr.ToggleCheckbox(date, task.ID)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	state := "not done"
	if p, ok := snap.Find(task.ID); ok && p.Done() {
		state = "done"
	}
	ctx.Printf("✓ %s on %s marked %s\n\n", task.Name, date, state)
	renderDay(ctx, snap)
	return nil
}
