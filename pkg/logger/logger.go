package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level controls which messages a Logger writes
type Level int

const (
	// LevelOff silences the logger
	LevelOff Level = iota
	// LevelInfo writes info, warn and error messages
	LevelInfo
	// LevelDebug writes everything
	LevelDebug
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none", "silent":
		return LevelOff
	case "debug", "verbose":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is a wrapper around the standard library logger
type Logger struct {
	*log.Logger
	scope string
	level Level
}

// New creates a new logger for the given scope (a chat ID, a package name, or empty)
func New(scope string) *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", 0),
		scope:  scope,
		level:  Global.level,
	}
}

// NewWithOutput creates a logger writing to out at the given level
func NewWithOutput(scope string, level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		Logger: log.New(out, "", 0),
		scope:  scope,
		level:  level,
	}
}

// Discard returns a logger that writes nothing. Handy in tests.
func Discard() *Logger {
	return NewWithOutput("", LevelOff, io.Discard)
}

// With returns a copy of the logger with a different scope
func (l *Logger) With(scope string) *Logger {
	return &Logger{
		Logger: l.Logger,
		scope:  scope,
		level:  l.level,
	}
}

// Level returns the logger's level
func (l *Logger) Level() Level {
	return l.level
}

// formatMessage formats a log message with timestamp and scope
func (l *Logger) formatMessage(level, format string, v ...interface{}) string {
	timestamp := time.Now().Format(time.RFC3339)
	message := fmt.Sprintf(format, v...)

	if l.scope != "" {
		return fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, level, l.scope, message)
	}

	return fmt.Sprintf("[%s] [%s] %s", timestamp, level, message)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	if l.level >= LevelInfo {
		l.Logger.Println(l.formatMessage("INFO", format, v...))
	}
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	if l.level >= LevelInfo {
		l.Logger.Println(l.formatMessage("ERROR", format, v...))
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level >= LevelDebug {
		l.Logger.Println(l.formatMessage("DEBUG", format, v...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level >= LevelInfo {
		l.Logger.Println(l.formatMessage("WARN", format, v...))
	}
}

// Global logger instance for application-wide logging
var Global = &Logger{
	Logger: log.New(os.Stdout, "", 0),
	level:  LevelInfo,
}

// SetGlobal sets the global logger
func SetGlobal(logger *Logger) {
	Global = logger
}
