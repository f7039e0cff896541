package transfer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage/sqlite"
)

func setupTestStore(t *testing.T) (*sqlite.Store, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return store, func() { store.Close() }
}

func sampleTasks() []models.TaskDefinition {
	return []models.TaskDefinition{
		{
			ID:        "a1",
			Name:      "Side project",
			Benchmark: 2,
			Unit:      "h",
			Weight:    1.5,
			SortOrder: 0,
			IsActive:  true,
			CreatedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           "b2",
			Name:         "Exam prep",
			Benchmark:    300,
			Unit:         "h",
			Weight:       1,
			IsCumulative: true,
			IsCheckbox:   true,
			SortOrder:    1,
			IsActive:     false,
			CreatedAt:    time.Date(2026, 1, 6, 18, 30, 0, 0, time.UTC),
		},
	}
}

func sameTask(a, b models.TaskDefinition) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Benchmark == b.Benchmark && a.Unit == b.Unit &&
		a.Weight == b.Weight && a.IsCumulative == b.IsCumulative && a.IsCheckbox == b.IsCheckbox &&
		a.SortOrder == b.SortOrder && a.IsActive == b.IsActive && a.CreatedAt.Equal(b.CreatedAt)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, sampleTasks(), format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			want := sampleTasks()
			if len(decoded) != len(want) {
				t.Fatalf("expected %d tasks, got %d", len(want), len(decoded))
			}
			for i := range want {
				if !sameTask(decoded[i], want[i]) {
					t.Errorf("task %d mismatch: got %+v, want %+v", i, decoded[i], want[i])
				}
			}
		})
	}
}

func TestEncodeFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleTasks()[:1], FormatJSON); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"id"`, `"name"`, `"benchmark"`, `"unit"`, `"weight"`, `"isCumulative"`,
		`"isCheckbox"`, `"sortOrder"`, `"isActive"`, `"createdAt": "2026-01-05T09:00:00Z"`} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in output:\n%s", key, out)
		}
	}
	if strings.Contains(out, "updatedAt") {
		t.Errorf("updatedAt should not be serialized:\n%s", out)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json"), FormatJSON); err == nil {
		t.Error("expected error for malformed json")
	}
	if _, err := Decode(strings.NewReader("- name: [unclosed"), FormatYAML); err == nil {
		t.Error("expected error for malformed yaml")
	}
	tasks, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil || len(tasks) != 0 {
		t.Errorf("expected empty yaml document to decode to no tasks, got %v %v", tasks, err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"tasks.json":      FormatJSON,
		"tasks.yaml":      FormatYAML,
		"tasks.YML":       FormatYAML,
		"tasks":           FormatJSON,
		"/tmp/export.txt": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestExportImportThroughStore(t *testing.T) {
	for _, name := range []string{"tasks_config.json", "tasks.yaml"} {
		t.Run(name, func(t *testing.T) {
			src, cleanupSrc := setupTestStore(t)
			defer cleanupSrc()
			if err := src.UpsertTasks(sampleTasks()); err != nil {
				t.Fatalf("UpsertTasks failed: %v", err)
			}

			path := filepath.Join(t.TempDir(), name)
			n, err := ExportFile(src, path)
			if err != nil {
				t.Fatalf("ExportFile failed: %v", err)
			}
			if n != 2 {
				t.Errorf("expected 2 exported tasks, got %d", n)
			}

			dst, cleanupDst := setupTestStore(t)
			defer cleanupDst()
			if n, err := ImportFile(dst, path); err != nil || n != 2 {
				t.Fatalf("ImportFile failed: n=%d err=%v", n, err)
			}

			got, err := dst.ListTasks(false)
			if err != nil {
				t.Fatalf("ListTasks failed: %v", err)
			}
			want := sampleTasks()
			if len(got) != len(want) {
				t.Fatalf("expected %d tasks, got %d", len(want), len(got))
			}
			for i := range want {
				if !sameTask(got[i], want[i]) {
					t.Errorf("task %d mismatch: got %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestImportRejectsInvalidRecords(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	tasks := sampleTasks()
	tasks[1].Benchmark = 0

	err := Import(store, tasks)
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	stored, err := store.ListTasks(false)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected nothing imported, got %d tasks", len(stored))
	}
}

func TestDefaultConfigFile(t *testing.T) {
	if got := DefaultConfigFile("/data"); got != filepath.Join("/data", "tasks_config.json") {
		t.Errorf("unexpected default config file: %s", got)
	}
}
