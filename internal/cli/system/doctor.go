package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/dailytrack/internal/backup"
	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/constants"
	"github.com/julianstephens/dailytrack/internal/storage/sqlite"
	"github.com/julianstephens/dailytrack/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
	sqlite   bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true, sqlite: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Orphaned entries", run: checkOrphanedEntries, needsDB: true, sqlite: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.sqlite && !cli.IsFileStore(ctx.Store) {
			ctx.Printf("⊘ %s: SKIPPED (not a SQLite database)\n", c.name)
			continue
		}
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaVersion(ctx *cli.Context) (int, int, error) {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return 0, 0, fmt.Errorf("storage backend has no schema version")
	}
	return m.SchemaVersion()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run '%s migrate'", current, latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.StreakThreshold < 0 || settings.StreakThreshold > 1 {
		return fmt.Errorf("streak threshold %v is outside [0, 1]", settings.StreakThreshold)
	}
	if _, err := cli.LoadLocation(settings.Timezone); err != nil {
		return err
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	tasks, err := ctx.Store.ListTasks(false)
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	result := validation.ValidateTasks(tasks)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkOrphanedEntries(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := store.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var orphanedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM daily_entries e
		LEFT JOIN tasks t ON e.task_id = t.id
		WHERE t.id IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned entries: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d entries referencing non-existent tasks", orphanedCount)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
