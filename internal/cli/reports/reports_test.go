package reports

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage/sqlite"
)

// setupTestContext stores one task with scores 0.8, 0.75, 0.9, a gap, then 0.95
// on 2026-01-05..09, with "today" fixed to 2026-01-09.
func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, models.TaskDefinition, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	task := models.NewTask("Deep Work")
	task.Unit = "hours"
	if err := store.UpsertTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}
	values := map[string]float64{
		"2026-01-05": 0.8,
		"2026-01-06": 0.75,
		"2026-01-07": 0.9,
		"2026-01-09": 0.95,
	}
	for date, v := range values {
		entry := models.NewEntry(task.ID, models.MustParseDate(date), v)
		if date == "2026-01-06" {
			note := "short day"
			entry.Notes = &note
		}
		if _, err := store.UpsertEntry(entry); err != nil {
			t.Fatalf("failed to add entry: %v", err)
		}
	}

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	ctx.Clock = func() time.Time { return time.Date(2026, 1, 9, 12, 0, 0, 0, time.UTC) }

	return ctx, out, task, func() { store.Close() }
}

func TestHistoryCmd(t *testing.T) {
	ctx, out, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&HistoryCmd{}).Run(ctx); err != nil {
		t.Fatalf("history failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Month: 2025-12-10 to 2026-01-09",
		"Average score:  85%",
		"Days tracked:   4",
		"Current streak: 1",
		"Best streak:    3",
		"2026-01-06 Tue",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "2026-01-08") {
		t.Errorf("dates without entries should be omitted:\n%s", output)
	}
}

func TestHistoryCmd_Options(t *testing.T) {
	ctx, out, task, cleanup := setupTestContext(t)
	defer cleanup()

	t.Run("week heatmap", func(t *testing.T) {
		out.Reset()
		if err := (&HistoryCmd{Period: "week", Heatmap: true}).Run(ctx); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		output := out.String()
		if !strings.Contains(output, "Week: 2026-01-02 to 2026-01-09") {
			t.Errorf("unexpected header:\n%s", output)
		}
		if !strings.Contains(output, "Su Mo Tu We Th Fr Sa") || !strings.Contains(output, "█") {
			t.Errorf("expected heatmap:\n%s", output)
		}
	})

	t.Run("task entries", func(t *testing.T) {
		out.Reset()
		if err := (&HistoryCmd{Period: "week", Task: task.Name}).Run(ctx); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		output := out.String()
		if !strings.Contains(output, "short day") || !strings.Contains(output, "4 entries, total 3.4 hours") {
			t.Errorf("unexpected task history:\n%s", output)
		}
	})

	t.Run("bad period", func(t *testing.T) {
		if err := (&HistoryCmd{Period: "decade"}).Run(ctx); err == nil {
			t.Error("expected error for unknown period")
		}
	})
}

func TestHeatCell(t *testing.T) {
	tests := []struct {
		score   float64
		tracked bool
		want    string
	}{
		{0, false, "·"},
		{0.1, true, "░"},
		{0.5, true, "▒"},
		{0.7, true, "▓"},
		{0.95, true, "█"},
	}
	for _, tt := range tests {
		if got := heatCell(tt.score, tt.tracked); got != tt.want {
			t.Errorf("heatCell(%v, %v) = %q, want %q", tt.score, tt.tracked, got, tt.want)
		}
	}
}

func TestBreakdownCmd(t *testing.T) {
	ctx, out, _, cleanup := setupTestContext(t)
	defer cleanup()

	paused := models.NewTask("Paused")
	paused.IsActive = false
	paused.SortOrder = 1
	if err := ctx.Store.UpsertTask(paused); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if err := (&BreakdownCmd{Date: "2026-01-06"}).Run(ctx); err != nil {
		t.Fatalf("breakdown failed: %v", err)
	}
	output := out.String()
	for _, want := range []string{"Breakdown for 2026-01-06", "Deep Work", "75%", "Paused", "(inactive)", "Daily score: 75% ✓"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestStreakCmd(t *testing.T) {
	ctx, out, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&StreakCmd{}).Run(ctx); err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	if !strings.Contains(out.String(), "Current streak: 1 day(s)") || !strings.Contains(out.String(), "Best streak:    3 day(s)") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	high := 0.85
	if err := (&StreakCmd{Threshold: &high}).Run(ctx); err != nil {
		t.Fatalf("streak failed: %v", err)
	}
	if !strings.Contains(out.String(), "Best streak:    1 day(s)") {
		t.Errorf("unexpected output with threshold 0.85:\n%s", out.String())
	}

	bad := 1.5
	if err := (&StreakCmd{Threshold: &bad}).Validate(); err == nil {
		t.Error("expected validation error for threshold > 1")
	}
}
