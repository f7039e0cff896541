package storage

import "github.com/julianstephens/dailytrack/internal/models"

// Provider is the persistence contract shared by the SQLite and PostgreSQL stores.
// SQL failures surface as errors wrapping errors.ErrStorage, never as empty results.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	ListTasks(activeOnly bool) ([]models.TaskDefinition, error)
	GetTask(id string) (models.TaskDefinition, error)
	GetTaskByName(name string) (models.TaskDefinition, error)
	UpsertTask(models.TaskDefinition) error
	UpsertTasks([]models.TaskDefinition) error
	UpdateTask(models.TaskDefinition) error
	DeleteTask(id string) error
	ReorderTasks(ids []string) error

	// Entries
	EntriesForDate(date models.Date) ([]models.DailyEntry, error)
	EntriesForTask(taskID string) ([]models.DailyEntry, error)
	EntriesInRange(start, end models.Date) ([]models.DailyEntry, error)
	GetEntry(taskID string, date models.Date) (models.DailyEntry, error)
	UpsertEntry(models.DailyEntry) (models.DailyEntry, error)
	UpsertEntries([]models.DailyEntry) error
	CumulativeTotal(taskID string) (float64, error)
	DistinctEntryDates() ([]models.Date, error)

	// Utils
	GetConfigPath() string
}
