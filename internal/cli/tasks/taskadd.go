package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/models"
)

type TaskAddCmd struct {
	Name       string  `arg:"" help:"Task name."`
	Benchmark  float64 `short:"b" help:"Daily target value (or overall goal for cumulative tasks)." default:"1"`
	Unit       string  `short:"u" help:"Unit label, e.g. hours or pages."`
	Weight     float64 `short:"w" help:"Weight in the daily score." default:"1"`
	Cumulative bool    `short:"c" help:"Track a running total against the benchmark instead of a daily target."`
	Checkbox   bool    `short:"x" help:"Done/not-done task; any positive value counts as done."`
	Inactive   bool    `help:"Create the task paused."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Benchmark <= 0 {
		return fmt.Errorf("benchmark must be greater than zero")
	}
	if c.Weight < 0 {
		return fmt.Errorf("weight must not be negative")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	draft := models.NewTask(strings.TrimSpace(c.Name))
	draft.Benchmark = c.Benchmark
	draft.Unit = c.Unit
	draft.Weight = c.Weight
	draft.IsCumulative = c.Cumulative
	draft.IsCheckbox = c.Checkbox
	draft.IsActive = !c.Inactive

	if _, err := tr.AddTask(draft); err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	ctx.Printf("Added task: %s (ID: %s)\n", draft.Name, draft.ID)
	return nil
}
