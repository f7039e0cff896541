package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func readLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")
	t.Cleanup(func() { Close() })

	if err := Init(Config{Dir: dir, Store: "/data/dailytrack.db"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(dir, "logs", "dailytrack.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("default level = %v, want warn", Logger.GetLevel())
	}

	Info("dropped at warn level")
	Warn("entry rejected", "task", "abc")

	content := readLog(t)
	if !strings.Contains(content, "entry rejected") {
		t.Errorf("log missing warning:\n%s", content)
	}
	if !strings.Contains(content, "store=/data/dailytrack.db") {
		t.Errorf("log missing store identity:\n%s", content)
	}
	if strings.Contains(content, "dropped at warn level") {
		t.Errorf("info record written at warn level:\n%s", content)
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    log.Level
		wantErr bool
	}{
		{name: "default", cfg: Config{}, want: log.WarnLevel},
		{name: "explicit info", cfg: Config{Level: "INFO"}, want: log.InfoLevel},
		{name: "explicit error", cfg: Config{Level: " error "}, want: log.ErrorLevel},
		{name: "debug wins", cfg: Config{Debug: true, Level: "error"}, want: log.DebugLevel},
		{name: "unknown falls back", cfg: Config{Level: "loud"}, want: log.WarnLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Dir = t.TempDir()
			t.Cleanup(func() { Close() })

			err := Init(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if Logger == nil {
				t.Fatal("Logger is nil after Init")
			}
			if Logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", Logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
