// Package migration applies the numbered schema files under migrations/<dialect>.
// Every applied version is recorded in schema_version with the time it ran.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/migrations"
)

// Dialect names a backend. It is also the migrations/ subdirectory.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ErrSchemaTooNew means the database was migrated by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) valid() bool {
	return d == SQLite || d == Postgres
}

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Status compares the database with the migrations this build carries.
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

func (s Status) UpToDate() bool {
	return s.Current >= s.Latest
}

type Runner struct {
	db         *sql.DB
	dialect    Dialect
	migrations []Migration
}

// New returns a runner over the embedded migrations for dialect.
func New(db *sql.DB, dialect Dialect) (*Runner, error) {
	if !dialect.valid() {
		return nil, fmt.Errorf("unknown migration dialect %q", dialect)
	}
	sub, err := fs.Sub(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}
	return NewWithFS(db, dialect, sub)
}

// NewWithFS reads migrations from fsys instead of the embedded set.
func NewWithFS(db *sql.DB, dialect Dialect, fsys fs.FS) (*Runner, error) {
	if !dialect.valid() {
		return nil, fmt.Errorf("unknown migration dialect %q", dialect)
	}
	list, err := readMigrations(fsys)
	if err != nil {
		return nil, err
	}
	return &Runner{db: db, dialect: dialect, migrations: list}, nil
}

func (r *Runner) Dialect() Dialect { return r.dialect }

func (r *Runner) Migrations() []Migration { return r.migrations }

// Latest is the highest version this build carries, 0 when there are none.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version    INTEGER PRIMARY KEY,
			applied_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}
	return nil
}

// Current is the highest applied version, 0 for a fresh database.
func (r *Runner) Current() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	var version int
	if err := r.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func (r *Runner) Status() (Status, error) {
	current, err := r.Current()
	if err != nil {
		return Status{}, err
	}
	st := Status{Current: current, Latest: r.Latest()}
	for _, m := range r.migrations {
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails with ErrSchemaTooNew when the database is ahead of this build.
// Pending migrations are not an error here; Apply handles them.
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	return st.tooNew()
}

func (s Status) tooNew() error {
	if s.Current > s.Latest {
		return fmt.Errorf("%w: database is at version %d, this build supports %d; upgrade %s",
			ErrSchemaTooNew, s.Current, s.Latest, constants.AppName)
	}
	return nil
}

// Apply runs pending migrations in order and returns how many ran. Each
// migration commits together with its schema_version row.
func (r *Runner) Apply(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	if err := st.tooNew(); err != nil {
		return 0, err
	}
	if len(st.Pending) == 0 {
		logFn(fmt.Sprintf("%s schema is up to date (version %d)", r.dialect, st.Current))
		return 0, nil
	}

	logFn(fmt.Sprintf("Migrating %s schema from version %d to %d", r.dialect, st.Current, st.Latest))
	insert := fmt.Sprintf("INSERT INTO schema_version (version, applied_at) VALUES (%s, %s)",
		r.dialect.placeholder(1), r.dialect.placeholder(2))

	applied := 0
	for _, m := range st.Pending {
		logFn(fmt.Sprintf("Applying migration %03d_%s", m.Version, m.Name))
		if err := r.applyOne(m, insert); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (r *Runner) applyOne(m Migration, insert string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: begin: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
	}
	stamp := time.Now().UTC().Format(constants.TimestampFormat)
	if _, err := tx.Exec(insert, m.Version, stamp); err != nil {
		return fmt.Errorf("migration %d: record version: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit: %w", m.Version, err)
	}
	return nil
}

// readMigrations loads NNN_name.sql files sorted by version. Other files are ignored.
func readMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var list []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, err := parseFilename(e.Name())
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		list = append(list, Migration{Version: version, Name: name, SQL: string(content)})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	for i := 1; i < len(list); i++ {
		if list[i].Version == list[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", list[i].Version)
		}
	}
	return list, nil
}

func parseFilename(filename string) (int, string, error) {
	prefix, rest, ok := strings.Cut(strings.TrimSuffix(filename, ".sql"), "_")
	if !ok || rest == "" {
		return 0, "", fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in %s: %w", filename, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in %s: must be at least 1", filename)
	}
	return version, rest, nil
}
