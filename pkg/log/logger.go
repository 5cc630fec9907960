package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

const (
	// rotationTime is how often the log file is cut over to a new one.
	rotationTime = 24 * time.Hour
	// retention is how long rotated log files are kept on disk.
	retention = 30 * 24 * time.Hour
)

var (
	logger *slog.Logger
	closer io.Closer
	mu     sync.RWMutex
)

// ParseLogLevel converts a string log level to a slog.Level.
// Valid values are "debug", "info", "warn", "error".
// Unknown values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// InitLog initializes or reinitializes the logger with the specified log level.
// Records are always written to stdout. When filePath is non-empty they are
// also appended to filePath, which is rotated at midnight and pruned after 30
// days; rotated files are named <filePath>.YYYYMMDD and filePath itself is kept
// as a symlink to the current one.
func InitLog(logLevel, filePath string) error {
	level := ParseLogLevel(logLevel)

	var out io.Writer = os.Stdout
	var fileCloser io.Closer
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		rl, err := rotatelogs.New(
			filePath+".%Y%m%d",
			rotatelogs.WithLinkName(filePath),
			rotatelogs.WithRotationTime(rotationTime),
			rotatelogs.WithMaxAge(retention),
		)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", filePath, err)
		}
		out = io.MultiWriter(os.Stdout, rl)
		fileCloser = rl
	}

	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
	}
	closer = fileCloser
	logger = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return nil
}

// SetOutput replaces the logger with one writing JSON records to w.
// Intended for tests that need to inspect log output.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close releases the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// GetLog returns the slog.Logger instance configured for the application.
// If the logger hasn't been initialized yet, it defaults to info level on stdout.
func GetLog() *slog.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	return logger
}

// Debug logs a message at Debug level.
func Debug(msg string, args ...any) { GetLog().Debug(msg, args...) }

// Info logs a message at Info level.
func Info(msg string, args ...any) { GetLog().Info(msg, args...) }

// Warn logs a message at Warn level.
func Warn(msg string, args ...any) { GetLog().Warn(msg, args...) }

// Error logs a message at Error level.
func Error(msg string, args ...any) { GetLog().Error(msg, args...) }

// Fatalf logs a formatted message and exits.
func Fatalf(format string, args ...any) {
	GetLog().Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Errorf logs a formatted message at Error level and returns it as an error.
// %w verbs are preserved in the returned error.
func Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	Error(err.Error())
	return err
}
