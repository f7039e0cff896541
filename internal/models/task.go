package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dailytrack/internal/constants"
)

// TaskDefinition is a recurring goal tracked once per day.
type TaskDefinition struct {
	ID           string    `json:"id" yaml:"id" validate:"required"`
	Name         string    `json:"name" yaml:"name" validate:"required"`
	Benchmark    float64   `json:"benchmark" yaml:"benchmark" validate:"gt=0"` // target value per day
	Unit         string    `json:"unit" yaml:"unit"`
	Weight       float64   `json:"weight" yaml:"weight" validate:"gte=0"` // share of the daily score
	IsCumulative bool      `json:"isCumulative" yaml:"isCumulative"`
	IsCheckbox   bool      `json:"isCheckbox" yaml:"isCheckbox"`
	SortOrder    int       `json:"sortOrder" yaml:"sortOrder"`
	IsActive     bool      `json:"isActive" yaml:"isActive"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"-" yaml:"-"`
}

// NewTask returns an active task with a fresh id and the default benchmark and weight.
func NewTask(name string) TaskDefinition {
	return TaskDefinition{
		ID:        uuid.New().String(),
		Name:      name,
		Benchmark: constants.DefaultBenchmark,
		Weight:    constants.DefaultWeight,
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// CountsTowardScore reports whether the task participates in the daily composite score.
func (t TaskDefinition) CountsTowardScore() bool {
	return t.IsActive && !t.IsCumulative
}
