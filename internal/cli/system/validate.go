package system

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.ListTasks(false)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	ctx.Println("Validating tasks...")
	result := validation.ValidateTasks(tasks)

	// Entries whose values could not have been written through the tracker
	ctx.Println("Validating entries...")
	for _, task := range tasks {
		entries, err := ctx.Store.EntriesForTask(task.ID)
		if err != nil {
			return fmt.Errorf("failed to load entries for %s: %w", task.Name, err)
		}
		for _, e := range entries {
			if err := validation.ValidateEntry(e); err != nil {
				result.Conflicts = append(result.Conflicts, validation.Conflict{
					Type:        validation.ConflictInvalidEntry,
					Description: fmt.Sprintf("Entry for %q on %s: %v", task.Name, e.Date, err),
					Items:       []string{task.Name},
					TaskIDs:     []string{task.ID},
				})
			}
		}
	}

	ctx.Println()
	ctx.Println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found", len(result.Conflicts))
	}
	return nil
}
