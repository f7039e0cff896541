package tasks

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
)

// TaskMoveCmd moves a task by list position, as shown by 'task list'.
type TaskMoveCmd struct {
	From int `arg:"" help:"Current position of the task."`
	To   int `arg:"" help:"New position of the task."`
}

func (c *TaskMoveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	tasks, err := tr.MoveTask(c.From, c.To)
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	ctx.Printf("Moved %s to position %d\n", tasks[c.To].Name, c.To)
	return nil
}

type TaskToggleCmd struct {
	Task string `arg:"" help:"Task id or name."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %q: %w", c.Task, err)
	}
	if _, err := tr.ToggleActive(task.ID); err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	state := "active"
	if task.IsActive {
		state = "inactive"
	}
	ctx.Printf("%s is now %s\n", task.Name, state)
	return nil
}
