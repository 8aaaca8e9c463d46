// Package logging provides the diagnostic logger for gh-issues.
// Entries are written to stderr, or appended to a log file when one is configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger is a level-filtered line logger.
// Fields are ordered to minimize memory padding.
type Logger struct {
	w     io.Writer
	file  *os.File
	now   func() time.Time
	mu    sync.Mutex
	level slog.Level
}

// New creates a Logger writing entries at or above level to w.
// A nil w disables logging.
func New(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		w:     w,
		level: level,
		now:   time.Now,
	}
}

// NewFile creates a Logger appending to the file at path.
func NewFile(path string, level slog.Level) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, level)
	l.file = f
	return l, nil
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromVerbosity maps the number of --debug flags to a level:
// none is warn, one is info, two or more is debug.
func LevelFromVerbosity(count int) slog.Level {
	switch {
	case count <= 0:
		return slog.LevelWarn
	case count == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// Level returns the minimum level written.
func (l *Logger) Level() slog.Level {
	return l.level
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.w = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [row-3] [dispatch] message
func formatLog(t time.Time, level slog.Level, row int, category, msg string) string {
	rowStr := "global"
	if row > 0 {
		rowStr = fmt.Sprintf("row-%d", row)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		rowStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, row int, category, msg string) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return // Logging disabled
	}
	_, _ = io.WriteString(l.w, formatLog(l.now(), level, row, category, msg))
}

// Debug logs a debug message.
func (l *Logger) Debug(row int, category, msg string) {
	l.log(slog.LevelDebug, row, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(row int, category, msg string) {
	l.log(slog.LevelInfo, row, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(row int, category, msg string) {
	l.log(slog.LevelWarn, row, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(row int, category, msg string) {
	l.log(slog.LevelError, row, category, msg)
}
