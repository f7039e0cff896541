package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
	"github.com/julianstephens/dailytrack/internal/validation"
)

// Tasks lists every task, active or not, in display order.
func (t *Tracker) Tasks() ([]models.TaskDefinition, error) {
	return t.store.ListTasks(false)
}

// ResolveTask finds a task by id, falling back to an exact name match.
func (t *Tracker) ResolveTask(ref string) (models.TaskDefinition, error) {
	task, err := t.store.GetTask(ref)
	if err == nil || !apperrors.Is(err, apperrors.ErrNotFound) {
		return task, err
	}
	return t.store.GetTaskByName(ref)
}

// AddTask stores draft as a new task at the end of the list.
func (t *Tracker) AddTask(draft models.TaskDefinition) ([]models.TaskDefinition, error) {
	all, err := t.store.ListTasks(false)
	if err != nil {
		return nil, err
	}

	draft.Name = strings.TrimSpace(draft.Name)
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.CreatedAt = t.clock().UTC().Truncate(time.Second)
	draft.SortOrder = len(all)

	if err := validation.ValidateTask(draft); err != nil {
		return nil, err
	}
	if err := t.store.UpsertTask(draft); err != nil {
		return nil, err
	}
	return t.Tasks()
}

// EditTask replaces a task's definition. CreatedAt is kept from the stored task.
func (t *Tracker) EditTask(task models.TaskDefinition) ([]models.TaskDefinition, error) {
	existing, err := t.store.GetTask(task.ID)
	if err != nil {
		return nil, err
	}

	task.Name = strings.TrimSpace(task.Name)
	task.CreatedAt = existing.CreatedAt
	if err := validation.ValidateTask(task); err != nil {
		return nil, err
	}
	if err := t.store.UpdateTask(task); err != nil {
		return nil, err
	}
	return t.Tasks()
}

// DeleteTask removes the task and its entries.
func (t *Tracker) DeleteTask(id string) ([]models.TaskDefinition, error) {
	if err := t.store.DeleteTask(id); err != nil {
		return nil, err
	}
	return t.Tasks()
}

// MoveTask moves the task at index from so that it ends up at index to, then
// renumbers every task.
func (t *Tracker) MoveTask(from, to int) ([]models.TaskDefinition, error) {
	all, err := t.store.ListTasks(false)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(all) {
		return nil, apperrors.Invalid("from", "index %d out of range [0, %d)", from, len(all))
	}
	if to < 0 || to >= len(all) {
		return nil, apperrors.Invalid("to", "index %d out of range [0, %d)", to, len(all))
	}

	moved := all[from]
	all = append(all[:from], all[from+1:]...)
	all = append(all[:to], append([]models.TaskDefinition{moved}, all[to:]...)...)

	ids := make([]string, len(all))
	for i, task := range all {
		ids[i] = task.ID
	}
	if err := t.store.ReorderTasks(ids); err != nil {
		return nil, err
	}
	return t.Tasks()
}

// ToggleActive flips whether the task shows up in the day view and the score.
func (t *Tracker) ToggleActive(id string) ([]models.TaskDefinition, error) {
	task, err := t.store.GetTask(id)
	if err != nil {
		return nil, err
	}
	task.IsActive = !task.IsActive
	if err := t.store.UpdateTask(task); err != nil {
		return nil, err
	}
	return t.Tasks()
}
