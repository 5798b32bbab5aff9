// Package logger writes huddle's diagnostics to a rotating file next to the
// store. The TUI owns the terminal, so stderr only gets log lines in debug mode.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/huddle/internal/config"
	"github.com/julianstephens/huddle/internal/constants"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger

	logPath string
)

type Config struct {
	Debug bool
	// StorePath is the submission store; logs live in a logs/ directory beside it
	StorePath string
}

// Backend names the store backend StorePath selects
func (c Config) Backend() string {
	if config.IsJSONPath(c.StorePath) {
		return "json"
	}
	return "sqlite"
}

func Init(cfg Config) error {
	logDir := filepath.Join(filepath.Dir(cfg.StorePath), constants.LogDirName)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	logPath = filepath.Join(logDir, constants.LogFileName)

	fileWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	// Every session starts with where its submissions live
	Logger.Debug("Session started", "version", constants.Version, "backend", cfg.Backend(), "store", cfg.StorePath)

	return nil
}

// Path returns the active log file, or "" before Init
func Path() string {
	return logPath
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs an error message and exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
