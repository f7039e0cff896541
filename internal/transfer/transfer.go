// Package transfer moves task definitions in and out of JSON and YAML documents.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/storage"
	"github.com/julianstephens/dailytrack/internal/validation"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension. Unknown extensions use JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DefaultConfigFile is the export target stored next to the database.
func DefaultConfigFile(configDir string) string {
	return filepath.Join(configDir, constants.TasksConfigFile)
}

// Encode writes tasks as a single array document.
func Encode(w io.Writer, tasks []models.TaskDefinition, format Format) error {
	if tasks == nil {
		tasks = []models.TaskDefinition{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("failed to encode tasks as yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("failed to encode tasks as json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Decode reads an array of task records.
func Decode(r io.Reader, format Format) ([]models.TaskDefinition, error) {
	var tasks []models.TaskDefinition
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&tasks); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml tasks: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&tasks); err != nil {
			return nil, fmt.Errorf("failed to decode json tasks: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if tasks == nil {
		tasks = []models.TaskDefinition{}
	}
	return tasks, nil
}

// Import validates every record and then upserts them all in one transaction.
// Nothing is written if any record is invalid.
func Import(store storage.Provider, tasks []models.TaskDefinition) error {
	for i, t := range tasks {
		if err := validation.ValidateTask(t); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	result := validation.ValidateTasks(tasks)
	for _, c := range result.Conflicts {
		logger.Warn("Imported task set has a conflict", "type", c.Type, "detail", c.Description)
	}
	return store.UpsertTasks(tasks)
}

// ExportFile writes every task to path in the format implied by its extension.
func ExportFile(store storage.Provider, path string) (int, error) {
	tasks, err := store.ListTasks(false)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return 0, fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, tasks, FormatForPath(path)); err != nil {
		return 0, err
	}
	return len(tasks), f.Close()
}

// ImportFile reads path and imports its tasks.
func ImportFile(store storage.Provider, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	tasks, err := Decode(f, FormatForPath(path))
	if err != nil {
		return 0, err
	}
	if err := Import(store, tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}
