// Package backup snapshots the SQLite database file and restores it from snapshots.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/logger"
)

const (
	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

// requiredTables must exist for a file to be accepted as a snapshot.
var requiredTables = []string{"tasks", "daily_entries", "config"}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager handles backup operations for one database file
type Manager struct {
	dbPath    string
	backupDir string
	now       func() time.Time
}

// NewManager creates a manager that keeps snapshots in a backups/ directory next to dbPath
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) backupPath(stamp string, counter int) string {
	name := constants.BackupFilePrefix + stamp
	if counter > 0 {
		name += fmt.Sprintf("-%d", counter)
	}
	return filepath.Join(m.backupDir, name+constants.BackupFileSuffix)
}

// nextBackupPath picks a free filename, widening the timestamp and then adding a counter on collision
func (m *Manager) nextBackupPath() (string, error) {
	now := m.now()
	path := m.backupPath(now.Format(minuteLayout), 0)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	for counter := 0; counter <= 100; counter++ {
		path = m.backupPath(stamp, counter)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique backup filename")
}

// CreateBackup snapshots the database and prunes snapshots beyond constants.MaxBackups
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if err := m.snapshot(backupPath); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	logger.Info("Created database backup", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}

	return backupPath, nil
}

// snapshot writes a consistent copy with VACUUM INTO, which also folds in any WAL content
func (m *Manager) snapshot(destPath string) error {
	srcDB, err := sql.Open("sqlite", "file:"+m.dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Warn("VACUUM INTO failed, copying database file instead", "error", err)
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}
	return nil
}

// parseBackupName extracts the timestamp from prefix-YYYYMMDD-HHMM[SS][-N].suffix
func parseBackupName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	parts := strings.Split(stamp, "-")
	if len(parts) == 3 && isDigits(parts[2]) {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ListBackups returns all snapshots, newest first
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupName(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Path: path, Timestamp: ts, Size: info.Size()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})

	return backups, nil
}

// rotateBackups removes old backups beyond the retention limit
func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("Removed old backup", "path", backups[i].Path)
	}

	return nil
}

// RestoreBackup replaces the database with a snapshot. The current database is
// snapshotted first and stale WAL files are removed. The store must be closed.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if err := verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.dbPath); err == nil {
		safety, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore database: %w", err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove stale database file", "path", m.dbPath+suffix, "error", err)
		}
	}

	logger.Info("Restored database from backup", "backup", backupPath, "previous", safety)
	return safety, nil
}

// verifyBackup checks that path is a SQLite database with the tracker schema
func verifyBackup(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, table := range requiredTables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&count)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("missing table %q", table)
		}
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
