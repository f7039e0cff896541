package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyEntry is the recorded value for one task on one day.
// (TaskID, Date) is the natural key.
type DailyEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Date      Date      `json:"date"`
	Value     float64   `json:"value"` // hours, count, or 1 for a completed checkbox
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewEntry returns an entry with a fresh id.
func NewEntry(taskID string, date Date, value float64) DailyEntry {
	return DailyEntry{
		ID:     uuid.New().String(),
		TaskID: taskID,
		Date:   date,
		Value:  value,
	}
}

// CompletionRatio returns value/benchmark without capping. It is 0 when benchmark <= 0.
func (e DailyEntry) CompletionRatio(benchmark float64) float64 {
	if benchmark <= 0 {
		return 0
	}
	return e.Value / benchmark
}

// NotesText returns the notes or an empty string.
func (e DailyEntry) NotesText() string {
	if e.Notes == nil {
		return ""
	}
	return *e.Notes
}
