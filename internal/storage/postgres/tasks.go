package postgres

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
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		benchmark = EXCLUDED.benchmark,
		unit = EXCLUDED.unit,
		weight = EXCLUDED.weight,
		is_cumulative = EXCLUDED.is_cumulative,
		is_checkbox = EXCLUDED.is_checkbox,
		sort_order = EXCLUDED.sort_order,
		is_active = EXCLUDED.is_active,
		created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.TaskDefinition, error) {
	var t models.TaskDefinition
	err := row.Scan(
		&t.ID, &t.Name, &t.Benchmark, &t.Unit, &t.Weight, &t.IsCumulative, &t.IsCheckbox,
		&t.SortOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.TaskDefinition{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (s *Store) ListTasks(activeOnly bool) ([]models.TaskDefinition, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if activeOnly {
		query += " WHERE is_active"
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

	t, err := scanTask(db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
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

	t, err := scanTask(db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE name = $1 ORDER BY sort_order LIMIT 1", name))
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
		t.SortOrder, t.IsActive, createdAt.UTC(), now(),
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

func (s *Store) UpdateTask(task models.TaskDefinition) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	res, err := db.Exec(`
		UPDATE tasks SET name = $1, benchmark = $2, unit = $3, weight = $4, is_cumulative = $5,
			is_checkbox = $6, sort_order = $7, is_active = $8, updated_at = $9
		WHERE id = $10`,
		task.Name, task.Benchmark, task.Unit, task.Weight, task.IsCumulative,
		task.IsCheckbox, task.SortOrder, task.IsActive, now(), task.ID,
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

	if _, err := tx.Exec("DELETE FROM daily_entries WHERE task_id = $1", id); err != nil {
		return apperrors.Storage("delete task entries", err)
	}
	if _, err := tx.Exec("DELETE FROM tasks WHERE id = $1", id); err != nil {
		return apperrors.Storage("delete task", err)
	}

	return apperrors.Storage("delete task", tx.Commit())
}

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

	stamp := now()
	for i, id := range ids {
		if _, err := tx.Exec("UPDATE tasks SET sort_order = $1, updated_at = $2 WHERE id = $3", i, stamp, id); err != nil {
			return apperrors.Storage("reorder tasks", err)
		}
	}

	return apperrors.Storage("reorder tasks", tx.Commit())
}
