// Package logging sets up the process-wide slog logger
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global slog instance for the application
var Logger = slog.Default()

// Options describes where and how much to log
type Options struct {
	File      string
	Level     string
	MaxSizeMB int
	MaxFiles  int
}

// Init points slog (and the standard log package) at a rotating text log file.
// The returned closer flushes and closes the file.
func Init(opts Options) (io.Closer, error) {
	if opts.File == "" {
		return nil, fmt.Errorf("log file path must not be empty")
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 5
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	writer := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxFiles,
	}

	// Create text handler (human readable)
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	log.SetOutput(writer)
	log.SetFlags(log.LstdFlags)

	return writer, nil
}

// Discard routes all logging nowhere; used when the log file cannot be opened
func Discard() {
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(Logger)
	log.SetOutput(io.Discard)
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
