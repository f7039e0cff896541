package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateTask checks field-level rules for a task before it is written.
func ValidateTask(task models.TaskDefinition) error {
	task.Name = strings.TrimSpace(task.Name)
	if err := validate.Struct(task); err != nil {
		return translate(err)
	}
	if math.IsNaN(task.Benchmark) || math.IsInf(task.Benchmark, 0) {
		return apperrors.Invalid("benchmark", "must be a finite number")
	}
	if math.IsNaN(task.Weight) || math.IsInf(task.Weight, 0) {
		return apperrors.Invalid("weight", "must be a finite number")
	}
	return nil
}

// ValidateEntry checks an entry before upsert.
func ValidateEntry(entry models.DailyEntry) error {
	if strings.TrimSpace(entry.TaskID) == "" {
		return apperrors.Invalid("task id", "must not be empty")
	}
	if entry.Date.IsZero() {
		return apperrors.Invalid("date", "must be set")
	}
	return ValidateValue(entry.Value)
}

// ValidateValue rejects negative and non-finite progress amounts.
func ValidateValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apperrors.Invalid("value", "must be a finite number")
	}
	if value < 0 {
		return apperrors.Invalid("value", "must be >= 0, got %g", value)
	}
	return nil
}

// ValidateDateKey parses a YYYY-MM-DD key, reporting a validation fault on malformed input.
func ValidateDateKey(key string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(key))
	if err != nil {
		return models.Date{}, apperrors.Invalid("date", "%q is not a YYYY-MM-DD calendar date", key)
	}
	return d, nil
}

func translate(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.Invalid("", err.Error())
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperrors.Invalid(field, "must not be empty")
	case "gt":
		return apperrors.Invalid(field, "must be > %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return apperrors.Invalid(field, "must be >= %s, got %v", fe.Param(), fe.Value())
	default:
		return apperrors.Invalid(field, "failed %q rule", fe.Tag())
	}
}

// ConflictType represents the type of task set conflict
type ConflictType string

const (
	ConflictDuplicateTaskName ConflictType = "duplicate_task_name"
	ConflictZeroTotalWeight   ConflictType = "zero_total_weight"
	ConflictInvalidTask       ConflictType = "invalid_task"
	ConflictInvalidEntry      ConflictType = "invalid_entry"
)

// Conflict represents a problem detected across the task set
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Task names involved
	TaskIDs     []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateTasks checks the whole task set. Duplicate names break name lookups
// (seed and CLI references), and a set of active daily tasks whose weights sum to
// zero always scores 0.
func ValidateTasks(tasks []models.TaskDefinition) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, task := range tasks {
		if err := ValidateTask(task); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTask,
				Description: fmt.Sprintf("Task %q: %v", task.Name, err),
				Items:       []string{task.Name},
				TaskIDs:     []string{task.ID},
			})
		}
	}

	nameIDs := make(map[string][]string)
	for _, task := range tasks {
		if task.Name == "" {
			continue
		}
		nameIDs[task.Name] = append(nameIDs[task.Name], task.ID)
	}
	names := make([]string, 0, len(nameIDs))
	for name := range nameIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ids := nameIDs[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("Duplicate task name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				TaskIDs:     ids,
			})
		}
	}

	var scored []string
	totalWeight := 0.0
	for _, task := range tasks {
		if task.CountsTowardScore() {
			scored = append(scored, task.Name)
			totalWeight += task.Weight
		}
	}
	if len(scored) > 0 && totalWeight == 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictZeroTotalWeight,
			Description: "Active daily tasks have a total weight of 0; every day will score 0%",
			Items:       scored,
		})
	}

	return result
}
