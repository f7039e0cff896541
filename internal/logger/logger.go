// Package logger owns the process-wide charmbracelet logger. Records go to a
// rotating file next to the active store and, with --debug, to stderr as well.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dailytrack/internal/constants"
)

var (
	Logger *log.Logger

	file *lumberjack.Logger
)

type Config struct {
	// Dir is the directory holding the store; logs live in Dir/logs.
	Dir string
	// Debug lowers the level to debug and mirrors records to stderr.
	Debug bool
	// Level is an explicit level name. Debug wins over it.
	Level string
	// Store identifies the open store on every record. Never a connection string.
	Store string
}

// level resolves the effective level. Unknown names fall back to warn.
func (c Config) level() (log.Level, error) {
	if c.Debug {
		return log.DebugLevel, nil
	}
	if strings.TrimSpace(c.Level) == "" {
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.Level)))
	if err != nil {
		return log.WarnLevel, fmt.Errorf("unknown log level %q", c.Level)
	}
	return lvl, nil
}

// Init replaces the global logger. A bad Level still yields a working
// logger at warn; the returned error says why.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.Dir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	_ = Close()
	file = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.DefaultLogFile),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	level, levelErr := cfg.level()

	var w io.Writer = file
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, file)
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	if cfg.Store != "" {
		l = l.With("store", cfg.Store)
	}
	Logger = l

	Logger.Debug("logger ready", "file", file.Filename, "level", level.String())
	return levelErr
}

// Path is the active log file, or "" before Init.
func Path() string {
	if file == nil {
		return ""
	}
	return file.Filename
}

// Close releases the log file. Logging after Close reopens it.
func Close() error {
	if file == nil {
		return nil
	}
	return file.Close()
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
