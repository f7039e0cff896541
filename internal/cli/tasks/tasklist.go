package tasks

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/models"
)

type TaskListCmd struct {
	Active bool `short:"a" help:"Only show active tasks."`
	IDs    bool `help:"Show task ids."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.ListTasks(c.Active)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		ctx.Printf("No tasks found. Add one with '%s task add'.\n", constants.AppName)
		return nil
	}

	for i, task := range tasks {
		line := fmt.Sprintf("%2d. %-32s %s", i, task.Name, describe(task))
		if c.IDs {
			line += "  " + task.ID
		}
		ctx.Println(line)
	}
	return nil
}

func describe(task models.TaskDefinition) string {
	var parts []string
	switch {
	case task.IsCheckbox && !task.IsCumulative:
		parts = append(parts, "checkbox")
	case task.IsCumulative:
		parts = append(parts, fmt.Sprintf("goal %s %s total", cli.FormatNumber(task.Benchmark), task.Unit))
	default:
		parts = append(parts, fmt.Sprintf("%s %s/day", cli.FormatNumber(task.Benchmark), task.Unit))
	}
	if task.Weight != 1 {
		parts = append(parts, "weight "+cli.FormatNumber(task.Weight))
	}
	if !task.IsActive {
		parts = append(parts, "inactive")
	}
	return strings.Join(parts, ", ")
}
