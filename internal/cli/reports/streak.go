package reports

import (
	"fmt"

	"github.com/julianstephens/dailytrack/internal/cli"
)

type StreakCmd struct {
	Threshold *float64 `help:"Minimum daily score for a day to count. Defaults to the streak_threshold setting."`
}

func (c *StreakCmd) Validate() error {
	if c.Threshold != nil && (*c.Threshold < 0 || *c.Threshold > 1) {
		return fmt.Errorf("threshold must be between 0 and 1")
	}
	return nil
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}
	threshold := tr.Threshold()
	if c.Threshold != nil {
		threshold = *c.Threshold
	}

	today := tr.Today()
	current, err := tr.Analytics().CurrentStreak(today, threshold)
	if err != nil {
		return fmt.Errorf("failed to compute current streak: %w", err)
	}
	best, err := tr.Analytics().BestStreak(threshold)
	if err != nil {
		return fmt.Errorf("failed to compute best streak: %w", err)
	}

	ctx.Printf("Threshold:      %s\n", cli.FormatPercent(threshold))
	ctx.Printf("Current streak: %d day(s)\n", current)
	ctx.Printf("Best streak:    %d day(s)\n", best)
	return nil
}
