package sqlite

import (
	"database/sql"
	"errors"

	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
)

const taskColumns = `id, name, benchmark, unit, weight, is_cumulative, is_checkbox,
		sort_order, is_active, created_at, updated_at`

const upsertTaskSQL = `
	INSERT INTO tasks (id, name, benchmark, unit, weight, is_cumulative, is_checkbox,
		sort_order, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		benchmark = excluded.benchmark,
		unit = excluded.unit,
		weight = excluded.weight,
		is_cumulative = excluded.is_cumulative,
		is_checkbox = excluded.is_checkbox,
		sort_order = excluded.sort_order,
		is_active = excluded.is_active,
		created_at = excluded.created_at,
		updated_at = excluded.updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.TaskDefinition, error) {
	var t models.TaskDefinition
	var createdAt, updatedAt string
	err := row.Scan(
		&t.ID, &t.Name, &t.Benchmark, &t.Unit, &t.Weight, &t.IsCumulative, &t.IsCheckbox,
		&t.SortOrder, &t.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.TaskDefinition{}, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return models.TaskDefinition{}, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return models.TaskDefinition{}, err
	}
	return t, nil
}

func (s *Store) ListTasks(activeOnly bool) ([]models.TaskDefinition, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY sort_order, name"

	rows, err := db.Query(query)
	if err != nil {
		return nil, apperrors.Storage("list tasks", err)
	}
	defer rows.Close()

	tasks := []models.TaskDefinition{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, apperrors.Storage("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("list tasks", err)
	}
	return tasks, nil
}

func (s *Store) GetTask(id string) (models.TaskDefinition, error) {
	db, err := s.conn()
	if err != nil {
		return models.TaskDefinition{}, err
	}

	t, err := scanTask(db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskDefinition{}, apperrors.NotFound("task", id)
	}
	if err != nil {
		return models.TaskDefinition{}, apperrors.Storage("get task", err)
	}
	return t, nil
}

func (s *Store) GetTaskByName(name string) (models.TaskDefinition, error) {
	db, err := s.conn()
	if err != nil {
		return models.TaskDefinition{}, err
	}

	row := db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE name = ? ORDER BY sort_order LIMIT 1", name)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TaskDefinition{}, apperrors.NotFound("task", name)
	}
	if err != nil {
		return models.TaskDefinition{}, apperrors.Storage("get task by name", err)
	}
	return t, nil
}

func taskArgs(t models.TaskDefinition) []interface{} {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	return []interface{}{
		t.ID, t.Name, t.Benchmark, t.Unit, t.Weight, t.IsCumulative, t.IsCheckbox,
		t.SortOrder, t.IsActive, formatTimestamp(createdAt), formatTimestamp(now()),
	}
}

func (s *Store) UpsertTask(task models.TaskDefinition) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec(upsertTaskSQL, taskArgs(task)...); err != nil {
		return apperrors.Storage("upsert task", err)
	}
	return nil
}

func (s *Store) UpsertTasks(tasks []models.TaskDefinition) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return apperrors.Storage("upsert tasks", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertTaskSQL)
	if err != nil {
		return apperrors.Storage("upsert tasks", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.Exec(taskArgs(t)...); err != nil {
			return apperrors.Storage("upsert tasks", err)
		}
	}

	return apperrors.Storage("upsert tasks", tx.Commit())
}

// UpdateTask replaces an existing task. created_at is left as stored.
func (s *Store) UpdateTask(task models.TaskDefinition) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec(`
		UPDATE tasks SET name = ?, benchmark = ?, unit = ?, weight = ?, is_cumulative = ?,
			is_checkbox = ?, sort_order = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		task.Name, task.Benchmark, task.Unit, task.Weight, task.IsCumulative,
		task.IsCheckbox, task.SortOrder, task.IsActive, formatTimestamp(now()), task.ID,
	)
	if err != nil {
		return apperrors.Storage("update task", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Storage("update task", err)
	}
	if n == 0 {
		return apperrors.NotFound("task", task.ID)
	}
	return nil
}

// DeleteTask removes the task and all of its entries. Unknown ids are ignored.
func (s *Store) DeleteTask(id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return apperrors.Storage("delete task", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM daily_entries WHERE task_id = ?", id); err != nil {
		return apperrors.Storage("delete task entries", err)
	}
	if _, err := tx.Exec("DELETE FROM tasks WHERE id = ?", id); err != nil {
		return apperrors.Storage("delete task", err)
	}

	return apperrors.Storage("delete task", tx.Commit())
}

// ReorderTasks sets sort_order to each id's position in ids.
func (s *Store) ReorderTasks(ids []string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return apperrors.Storage("reorder tasks", err)
	}
	defer tx.Rollback()

	stamp := formatTimestamp(now())
	for i, id := range ids {
		if _, err := tx.Exec("UPDATE tasks SET sort_order = ?, updated_at = ? WHERE id = ?", i, stamp, id); err != nil {
			return apperrors.Storage("reorder tasks", err)
		}
	}

	return apperrors.Storage("reorder tasks", tx.Commit())
}
