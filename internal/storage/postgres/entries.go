package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/models"
)

const entryColumns = "id, task_id, date, value, notes, created_at, updated_at"

func scanEntry(row rowScanner) (models.DailyEntry, error) {
	var e models.DailyEntry
	var notes sql.NullString
	if err := row.Scan(&e.ID, &e.TaskID, &e.Date, &e.Value, &notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.DailyEntry{}, err
	}
	if notes.Valid {
		n := notes.String
		e.Notes = &n
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

func (s *Store) queryEntries(op, query string, args ...interface{}) ([]models.DailyEntry, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, apperrors.Storage(op, err)
	}
	defer rows.Close()

	entries := []models.DailyEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.Storage(op, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage(op, err)
	}
	return entries, nil
}

func (s *Store) EntriesForDate(date models.Date) ([]models.DailyEntry, error) {
	return s.queryEntries("entries for date",
		"SELECT "+entryColumns+" FROM daily_entries WHERE date = $1 ORDER BY created_at, seq",
		date.String())
}

func (s *Store) EntriesForTask(taskID string) ([]models.DailyEntry, error) {
	return s.queryEntries("entries for task",
		"SELECT "+entryColumns+" FROM daily_entries WHERE task_id = $1 ORDER BY date",
		taskID)
}

func (s *Store) EntriesInRange(start, end models.Date) ([]models.DailyEntry, error) {
	return s.queryEntries("entries in range",
		"SELECT "+entryColumns+" FROM daily_entries WHERE date >= $1 AND date <= $2 ORDER BY date, created_at, seq",
		start.String(), end.String())
}

func (s *Store) GetEntry(taskID string, date models.Date) (models.DailyEntry, error) {
	db, err := s.conn()
	if err != nil {
		return models.DailyEntry{}, err
	}

	e, err := scanEntry(db.QueryRow("SELECT "+entryColumns+" FROM daily_entries WHERE task_id = $1 AND date = $2", taskID, date.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return models.DailyEntry{}, apperrors.NotFound("entry", taskID+"@"+date.String())
	}
	if err != nil {
		return models.DailyEntry{}, apperrors.Storage("get entry", err)
	}
	return e, nil
}

// UpsertEntry writes the entry for (task, date). An existing row keeps its id and created_at.
func (s *Store) UpsertEntry(entry models.DailyEntry) (models.DailyEntry, error) {
	db, err := s.conn()
	if err != nil {
		return models.DailyEntry{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return models.DailyEntry{}, apperrors.Storage("upsert entry", err)
	}
	defer tx.Rollback()

	stored, err := upsertEntryTx(tx, entry, now())
	if err != nil {
		return models.DailyEntry{}, wrapEntryErr("upsert entry", err)
	}
	if err := tx.Commit(); err != nil {
		return models.DailyEntry{}, apperrors.Storage("upsert entry", err)
	}
	return stored, nil
}

// UpsertEntries writes all entries in one transaction. Nothing is kept if any write fails.
func (s *Store) UpsertEntries(entries []models.DailyEntry) error {
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return apperrors.Storage("upsert entries", err)
	}
	defer tx.Rollback()

	stamp := now()
	for _, e := range entries {
		if _, err := upsertEntryTx(tx, e, stamp); err != nil {
			return wrapEntryErr("upsert entries", err)
		}
	}
	return apperrors.Storage("upsert entries", tx.Commit())
}

func wrapEntryErr(op string, err error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return apperrors.Storage(op, err)
}

func upsertEntryTx(tx *sql.Tx, entry models.DailyEntry, stamp time.Time) (models.DailyEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = stamp
	}

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)", entry.TaskID).Scan(&exists); err != nil {
		return models.DailyEntry{}, err
	}
	if !exists {
		return models.DailyEntry{}, apperrors.NotFound("task", entry.TaskID)
	}

	var notes sql.NullString
	if entry.Notes != nil {
		notes = sql.NullString{String: *entry.Notes, Valid: true}
	}

	row := tx.QueryRow(`
		INSERT INTO daily_entries (id, task_id, date, value, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (task_id, date) DO UPDATE SET
			value = EXCLUDED.value,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
		RETURNING `+entryColumns,
		entry.ID, entry.TaskID, entry.Date.String(), entry.Value, notes, createdAt.UTC(), stamp,
	)
	return scanEntry(row)
}

func (s *Store) CumulativeTotal(taskID string) (float64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := db.QueryRow("SELECT COALESCE(SUM(value), 0) FROM daily_entries WHERE task_id = $1", taskID).Scan(&total); err != nil {
		return 0, apperrors.Storage("cumulative total", err)
	}
	return total, nil
}

func (s *Store) DistinctEntryDates() ([]models.Date, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT DISTINCT date FROM daily_entries ORDER BY date")
	if err != nil {
		return nil, apperrors.Storage("distinct entry dates", err)
	}
	defer rows.Close()

	dates := []models.Date{}
	for rows.Next() {
		var d models.Date
		if err := rows.Scan(&d); err != nil {
			return nil, apperrors.Storage("distinct entry dates", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Storage("distinct entry dates", err)
	}
	return dates, nil
}
