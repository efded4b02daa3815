// Package logging provides file-based logging for git-board.
// It writes to a board-wide log file (.projectboard/logs/pb.log)
// and task-specific log files (.projectboard/logs/task-N.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/git-board/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to the board log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	clock      domain.Clock
	globalFile *os.File
	taskFiles  map[int64]*os.File
	boardDir   string
	mu         sync.Mutex
	level      slog.Level
}

// New creates a new Logger that writes below boardDir.
// If boardDir is empty, logging is disabled.
func New(boardDir string, level slog.Level, clock domain.Clock) *Logger {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Logger{
		boardDir:  boardDir,
		level:     level,
		clock:     clock,
		taskFiles: make(map[int64]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLog opens a log file for appending, creating the logs directory on demand.
// Nothing is created unless the board directory itself exists.
// Callers hold l.mu.
func (l *Logger) openLog(path string) (*os.File, error) {
	if _, err := os.Stat(l.boardDir); err != nil {
		return nil, fmt.Errorf("board directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (l *Logger) globalWriter() (io.Writer, error) {
	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLog(domain.GlobalLogPath(l.boardDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

func (l *Logger) taskWriter(taskID int64) (io.Writer, error) {
	if f, ok := l.taskFiles[taskID]; ok {
		return f, nil
	}
	f, err := l.openLog(domain.TaskLogPath(l.boardDir, taskID))
	if err != nil {
		return nil, err
	}
	l.taskFiles[taskID] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for id, f := range l.taskFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.taskFiles, id)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2026-01-30 09:32:51] [INFO] [task-1] [category] message
func formatLog(t time.Time, level slog.Level, taskID int64, category, msg string) string {
	taskStr := "global"
	if taskID > 0 {
		taskStr = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log, and to the task log when taskID > 0.
// Write failures are dropped; logging never fails an operation.
func (l *Logger) log(level slog.Level, taskID int64, category, msg string) {
	if l.boardDir == "" || level < l.level {
		return
	}

	entry := formatLog(l.clock.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if w, err := l.globalWriter(); err == nil {
		_, _ = io.WriteString(w, entry)
	}
	if taskID > 0 {
		if w, err := l.taskWriter(taskID); err == nil {
			_, _ = io.WriteString(w, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(taskID int64, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int64, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int64, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int64, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
