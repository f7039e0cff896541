package transfers

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dailytrack/internal/cli"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string, func()) {
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store)
	ctx.Out = out
	return ctx, out, dir, func() { store.Close() }
}

func TestExportImportDefaultPath(t *testing.T) {
	ctx, out, dir, cleanup := setupTestContext(t)
	defer cleanup()

	task := models.NewTask("Reading")
	task.Benchmark = 2
	task.Unit = "chapters"
	if err := ctx.Store.UpsertTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	path := filepath.Join(dir, "tasks_config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected export at %s: %v", path, err)
	}
	if !strings.Contains(out.String(), "Exported 1 task(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	out.Reset()
	if err := (&ImportCmd{}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	restored, err := ctx.Store.GetTask(task.ID)
	if err != nil {
		t.Fatalf("task not restored: %v", err)
	}
	if restored.Name != "Reading" || restored.Benchmark != 2 || restored.Unit != "chapters" {
		t.Errorf("unexpected restored task: %+v", restored)
	}
	if !strings.Contains(out.String(), "Imported 1 task(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	// Import takes a safety backup first
	backups, _ := filepath.Glob(filepath.Join(dir, "backups", "*.db"))
	if len(backups) == 0 {
		t.Error("expected a backup before import")
	}
}

func TestExportImportYAML(t *testing.T) {
	ctx, _, dir, cleanup := setupTestContext(t)
	defer cleanup()

	task := models.NewTask("Training")
	task.IsCheckbox = true
	if err := ctx.Store.UpsertTask(task); err != nil {
		t.Fatalf("failed to add task: %v", err)
	}

	path := filepath.Join(dir, "export", "tasks.yaml")
	if err := (&ExportCmd{Path: path}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "isCheckbox: true") {
		t.Errorf("expected YAML output, got:\n%s", data)
	}

	other, _, _, cleanupOther := setupTestContext(t)
	defer cleanupOther()
	if err := (&ImportCmd{Path: path}).Run(other); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	got, err := other.Store.GetTaskByName("Training")
	if err != nil || !got.IsCheckbox || got.ID != task.ID {
		t.Errorf("unexpected imported task: %+v (%v)", got, err)
	}
}

func TestImportCmd_Errors(t *testing.T) {
	ctx, _, dir, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&ImportCmd{Path: filepath.Join(dir, "missing.json")}).Run(ctx); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	content := `[{"id":"a","name":"","benchmark":1,"weight":1,"isActive":true,"createdAt":"2026-01-01T00:00:00Z"}]`
	if err := os.WriteFile(bad, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := (&ImportCmd{Path: bad}).Run(ctx); !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	tasks, _ := ctx.Store.ListTasks(false)
	if len(tasks) != 0 {
		t.Errorf("expected nothing imported, got %d tasks", len(tasks))
	}
}

func TestSeedCmd(t *testing.T) {
	ctx, out, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&SeedCmd{History: true}).Run(ctx); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	tasks, _ := ctx.Store.ListTasks(false)
	if len(tasks) != 7 {
		t.Errorf("expected 7 starter tasks, got %d", len(tasks))
	}
	dates, _ := ctx.Store.DistinctEntryDates()
	if len(dates) == 0 {
		t.Error("expected history entries")
	}
	if !strings.Contains(out.String(), "Seeded 7 starter task(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&SeedCmd{}).Run(ctx); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if !strings.Contains(out.String(), "nothing seeded") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
