package main

import (
	"fmt"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/dailytrack/internal/cli"
	"github.com/julianstephens/dailytrack/internal/cli/backups"
	"github.com/julianstephens/dailytrack/internal/cli/entries"
	"github.com/julianstephens/dailytrack/internal/cli/reports"
	"github.com/julianstephens/dailytrack/internal/cli/settings"
	"github.com/julianstephens/dailytrack/internal/cli/system"
	"github.com/julianstephens/dailytrack/internal/cli/tasks"
	"github.com/julianstephens/dailytrack/internal/cli/transfers"
	"github.com/julianstephens/dailytrack/internal/constants"
	apperrors "github.com/julianstephens/dailytrack/internal/errors"
	"github.com/julianstephens/dailytrack/internal/logger"
	"github.com/julianstephens/dailytrack/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, PostgreSQL connection string, or 'keyring'. PostgreSQL credentials must NOT be embedded in the connection string." type:"string" env:"DAILYTRACK_CONFIG"`
	Verbose bool   `name:"debug" help:"Enable debug logging to stderr."`

	Init      system.InitCmd       `cmd:"" help:"Initialize dailytrack storage."`
	Migrate   system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Day       entries.DayCmd       `cmd:"" help:"Show the tasks and score for a day."`
	Log       entries.LogCmd       `cmd:"" help:"Record a value for a task."`
	Check     entries.CheckCmd     `cmd:"" help:"Toggle a checkbox task."`
	History   reports.HistoryCmd   `cmd:"" help:"Show score history for a period."`
	Breakdown reports.BreakdownCmd `cmd:"" help:"Show per-task ratios for a date."`
	Streak    reports.StreakCmd    `cmd:"" help:"Show current and best streaks."`
	Export    transfers.ExportCmd  `cmd:"" help:"Export task definitions to a JSON or YAML file."`
	Import    transfers.ImportCmd  `cmd:"" help:"Import task definitions from a JSON or YAML file."`
	Seed      transfers.SeedCmd    `cmd:"" help:"Add the starter tasks to an empty store."`
	Validate  system.ValidateCmd   `cmd:"" help:"Validate tasks and entries for conflicts."`
	Debug     system.DebugCmd      `cmd:"" help:"Debug commands for troubleshooting."`
	Task      struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task and its entries."`
		List   tasks.TaskListCmd   `cmd:"" help:"List all tasks."`
		Move   tasks.TaskMoveCmd   `cmd:"" help:"Move a task to a new position."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Toggle whether a task is active."`
	} `cmd:"" help:"Manage tasks."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Update settings."`
	} `cmd:"" help:"Manage application settings."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the connection string kept in the OS keyring."`
}

// skipsLoad lists commands that manage their own storage lifecycle.
func skipsLoad(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "init", "doctor":
		return true
	}
	return false
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily goal tracker with weighted scores and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if strings.HasPrefix(ctx.Command(), "keyring") {
		initLogger(nil)
		apperrors.Fatal(ctx.Run(cli.NewContext(nil)))
		return
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		initLogger(nil)
		if apperrors.Is(err, cli.ErrEmbeddedCredentials) {
			fmt.Fprintln(os.Stderr, cli.EmbeddedCredentialsHelp())
			os.Exit(1)
		}
		apperrors.Fatal(err)
	}

	initLogger(store)

	if !skipsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			store.Close()
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(cli.NewContext(store))
	store.Close()
	apperrors.Fatal(err)
	_ = logger.Close()
}

// initLogger points the log at the store's directory. A nil store logs
// under the default config directory.
func initLogger(store storage.Provider) {
	cfg := logger.Config{
		Dir:   cli.ConfigDir(store),
		Debug: CLI.Verbose,
		Level: os.Getenv(constants.EnvLogLevel),
	}
	if store != nil {
		cfg.Store = store.GetConfigPath()
	}
	if err := logger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger: %v\n", err)
	}
}
