package settings

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/analytics"
	"github.com/julianstephens/dailytrack/internal/cli"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Streak Threshold: %s\n", cli.FormatPercent(settings.StreakThreshold))
	ctx.Printf("  Timezone:         %s\n", settings.Timezone)
	ctx.Printf("  Default Period:   %s\n", settings.DefaultPeriod)
	ctx.Printf("\nStorage: %s\n", ctx.Store.GetConfigPath())
	return nil
}

type SettingsSetCmd struct {
	StreakThreshold *float64 `help:"Minimum daily score (0-1) for a day to extend a streak."`
	Timezone        *string  `help:"IANA timezone used to decide which day is today, or 'Local'."`
	DefaultPeriod   *string  `help:"Default history period (week, month, quarter, year)."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.StreakThreshold != nil {
		if *c.StreakThreshold < 0 || *c.StreakThreshold > 1 {
			return fmt.Errorf("streak threshold must be between 0 and 1")
		}
		settings.StreakThreshold = *c.StreakThreshold
		updated = true
	}
	if c.Timezone != nil {
		if _, err := cli.LoadLocation(*c.Timezone); err != nil {
			return err
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultPeriod != nil {
		period, err := analytics.ParsePeriod(*c.DefaultPeriod)
		if err != nil {
			return err
		}
		settings.DefaultPeriod = string(period)
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'settings show' to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.ResetTracker()
	ctx.Println("Settings updated successfully.")
	return nil
}
