package constants

const (
	AppName            = "dailytrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/dailytrack/dailytrack.db"
	Version            = "v0.3.0"

	// EnvConfig overrides the --config flag.
	EnvConfig = "DAILYTRACK_CONFIG"
	// EnvConnection holds a PostgreSQL connection string.
	EnvConnection = "DAILYTRACK_DB_CONNECTION"
	// EnvLogLevel overrides the file log level (debug, info, warn, error).
	EnvLogLevel = "DAILYTRACK_LOG_LEVEL"
	// KeyringConfigValue makes the store read its connection string from the OS keyring.
	KeyringConfigValue = "keyring"

	// DateFormat is the canonical calendar date key (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used for created_at/updated_at columns
	TimestampFormat = "2006-01-02T15:04:05Z07:00"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dailytrack-"
	BackupFileSuffix = ".db"

	// Log rotation
	LogDirName     = "logs"
	LogMaxSizeMB   = 5
	LogMaxBackups  = 3
	LogMaxAgeDays  = 30
	DefaultLogFile = AppName + ".log"

	// TasksConfigFile is the default export/import target next to the database.
	TasksConfigFile = "tasks_config.json"

	// Scoring defaults
	DefaultStreakThreshold = 0.7
	DefaultBenchmark       = 1.0
	DefaultWeight          = 1.0

	// ValueStep is the TUI increment for non-checkbox tasks.
	ValueStep = 0.5

	// History periods
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)
