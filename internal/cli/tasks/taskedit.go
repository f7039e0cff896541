package tasks

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
)

type TaskEditCmd struct {
	Task       string   `arg:"" help:"Task id or name."`
	Name       *string  `help:"New task name."`
	Benchmark  *float64 `short:"b" help:"Daily target value."`
	Unit       *string  `short:"u" help:"Unit label."`
	Weight     *float64 `short:"w" help:"Weight in the daily score."`
	Cumulative *bool    `short:"c" help:"Track a running total against the benchmark."`
	Checkbox   *bool    `short:"x" help:"Done/not-done task."`
	Active     *bool    `help:"Whether the task is shown and scored."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %q: %w", c.Task, err)
	}

	updated := false
	if c.Name != nil {
		task.Name = *c.Name
		updated = true
	}
	if c.Benchmark != nil {
		task.Benchmark = *c.Benchmark
		updated = true
	}
	if c.Unit != nil {
		task.Unit = *c.Unit
		updated = true
	}
	if c.Weight != nil {
		task.Weight = *c.Weight
		updated = true
	}
	if c.Cumulative != nil {
		task.IsCumulative = *c.Cumulative
		updated = true
	}
	if c.Checkbox != nil {
		task.IsCheckbox = *c.Checkbox
		updated = true
	}
	if c.Active != nil {
		task.IsActive = *c.Active
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use flags like --name or --benchmark to edit the task.")
		return nil
	}

	if _, err := tr.EditTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	ctx.Printf("Updated task: %s\n", task.Name)
	return nil
}
