package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/seed"
	"github.com/julianstephens/dailytrack/internal/storage"
)

type InitCmd struct {
	Force   bool   `help:"Force reset by deleting existing database before initialization."`
	Source  string `help:"Source database path or connection string to copy data from."`
	Seed    bool   `help:"Add the starter tasks when the store is empty."`
	History bool   `help:"With --seed, also load the sample history entries."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized dailytrack storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	if c.Seed {
		seeded, err := seed.IfEmpty(ctx.Store, c.History)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		if seeded {
			ctx.Printf("Seeded %d starter task(s)\n", len(seed.StarterTasks()))
		} else {
			ctx.Println("Store already has tasks, skipping seed.")
		}
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !cli.IsFileStore(ctx.Store) {
		return errors.New("--force is only supported for SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	// Don't delete if it's the source
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		for _, suffix := range []string{"", "-wal", "-shm"} {
			if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
		}
		ctx.ResetTracker()
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyStore(ctx, source, ctx.Store)
}

// copyStore copies settings, tasks and entries. Entry ids are kept.
func copyStore(ctx *cli.Context, src, dst storage.Provider) error {
	ctx.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Migrating tasks...")
	tasks, err := src.ListTasks(false)
	if err != nil {
		return fmt.Errorf("failed to get tasks from source: %w", err)
	}
	if err := dst.UpsertTasks(tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	ctx.Printf("    Migrated %d tasks\n", len(tasks))

	ctx.Println("  Migrating entries...")
	count := 0
	for _, task := range tasks {
		entries, err := src.EntriesForTask(task.ID)
		if err != nil {
			return fmt.Errorf("failed to get entries for task %s: %w", task.Name, err)
		}
		for _, entry := range entries {
			if _, err := dst.UpsertEntry(entry); err != nil {
				return fmt.Errorf("failed to add entry %s: %w", entry.ID, err)
			}
			count++
		}
	}
	ctx.Printf("    Migrated %d entries\n", count)

	return nil
}
