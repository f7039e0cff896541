package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/dailytrack/internal/backup"
	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage"
	"github.com/julianstephens/dailytrack/internal/tracker"
)

type Context struct {
	Store storage.Provider
	Out   io.Writer
	In    io.Reader
	Clock func() time.Time

	tracker *tracker.Tracker
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Out:   os.Stdout,
		In:    os.Stdin,
		Clock: time.Now,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Tracker builds the command surface from the stored settings on first use.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}

	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	c.tracker = tracker.New(c.Store,
		tracker.WithClock(clock),
		tracker.WithLocation(loc),
		tracker.WithThreshold(settings.StreakThreshold),
	)
	return c.tracker, nil
}

// ResetTracker drops the cached tracker so the next call rereads settings.
func (c *Context) ResetTracker() {
	c.tracker = nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !IsFileStore(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// LoadLocation resolves the timezone setting. "Local" and "" mean the system zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDateArg accepts YYYY-MM-DD, "today", "yesterday" and "tomorrow".
func ParseDateArg(value string, today models.Date) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD, 'today' or 'yesterday'", value)
	}
	return date, nil
}

// FormatNumber prints whole numbers without decimals and trims trailing zeros.
func FormatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// FormatPercent renders a ratio as a whole percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// Bar draws a fixed-width text progress bar for a capped ratio.
func Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
