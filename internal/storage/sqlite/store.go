package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dailytrack/internal/constants"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/migration"
)

// pragmas are applied to every connection in the pool
var pragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Transactions begin IMMEDIATE so concurrent writers wait on busy_timeout
// instead of failing when a read inside the transaction upgrades to a write.
func (s *Store) dsn() string {
	params := make([]string, 0, len(pragmas)+1)
	params = append(params, "_txlock=immediate")
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	return "file:" + s.path + "?" + strings.Join(params, "&")
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Fill in any settings keys that are not stored yet
	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	if err := s.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Validate schema version using embedded migrations
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// tableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	return migration.New(s.db, migration.SQLite)
}

func (s *Store) runMigrations() error {
	_, err := s.Migrate(func(msg string) {
		logger.Info(msg, "store", s.path)
	})
	return err
}

// Migrate applies pending schema migrations and returns how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if _, err := s.conn(); err != nil {
		return 0, err
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, err
	}
	return runner.Apply(logFn)
}

// SchemaVersion returns the stored schema version and the newest embedded one.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if _, err := s.conn(); err != nil {
		return 0, 0, err
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	st, err := runner.Status()
	if err != nil {
		return 0, 0, apperrors.Storage("schema version", err)
	}
	return st.Current, st.Latest, nil
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}

	ok, err := s.tableExists("tasks")
	if err != nil {
		return apperrors.Storage("check schema", err)
	}
	if !ok {
		return fmt.Errorf("database at %s has no schema, run '%s init' first", s.path, constants.AppName)
	}

	return runner.Check()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, apperrors.Storage("connect", fmt.Errorf("database is not open"))
	}
	return s.db, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(constants.TimestampFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
