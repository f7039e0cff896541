package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	period, err := analytics.ParsePeriod(settings.DefaultPeriod)
	if err != nil {
		logger.Warn("invalid default period, using month", "period", settings.DefaultPeriod)
		period = analytics.PeriodMonth
	}

	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(tr, period), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
