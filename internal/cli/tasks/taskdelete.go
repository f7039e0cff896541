package tasks

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/julianstephens/dailytrack/internal/cli"
)

type TaskDeleteCmd struct {
	Task string `arg:"" help:"Task id or name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(c.Task)
	if err != nil {
		return fmt.Errorf("failed to find task %q: %w", c.Task, err)
	}

	if !c.Yes {
		entries, err := ctx.Store.EntriesForTask(task.ID)
		if err != nil {
			return fmt.Errorf("failed to count entries: %w", err)
		}
		ctx.Printf("Delete %q and its %d entries? This cannot be undone. [y/N]: ", task.Name, len(entries))
		if !confirm(ctx) {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if _, err := tr.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	ctx.Printf("Deleted task: %s\n", task.Name)
	return nil
}

func confirm(ctx *cli.Context) bool {
	reader := bufio.NewReader(ctx.In)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
