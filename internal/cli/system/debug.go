package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpTask     *DebugDumpTaskCmd     `cmd:"" help:"Dump task data as JSON."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day's entries and score as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpTaskCmd struct {
	Task string `arg:"" help:"Task id or name."`
}

func (cmd *DebugDumpTaskCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	task, err := tr.ResolveTask(cmd.Task)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	entries, err := ctx.Store.EntriesForTask(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	total, err := ctx.Store.CumulativeTotal(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get total: %w", err)
	}

	return printJSON(ctx, struct {
		Task    interface{} `json:"task"`
		Entries interface{} `json:"entries"`
		Total   float64     `json:"total"`
	}{task, entries, total})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	date, err := cli.ParseDateArg(cmd.Date, tr.Today())
	if err != nil {
		return err
	}
	entries, err := ctx.Store.EntriesForDate(date)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	snap, err := tr.Day(date)
	if err != nil {
		return err
	}

	return printJSON(ctx, struct {
		Date          string      `json:"date"`
		Score         float64     `json:"score"`
		CurrentStreak int         `json:"currentStreak"`
		Entries       interface{} `json:"entries"`
	}{date.String(), snap.Score, snap.CurrentStreak, entries})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}
