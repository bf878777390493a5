// Package logging builds the application's slog.Logger. Records go to stdout
// and to a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how records are written.
type Options struct {
	Level      string
	JSON       bool
	File       string // empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
}

// Logger bundles the slog.Logger with the closer of its rotating file.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New creates a Logger writing to stdout and, if opts.File is set, to a
// rotating file.
func New(opts Options) (*Logger, error) {
	var out io.Writer = os.Stdout
	var file *lumberjack.Logger

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	return &Logger{Logger: slog.New(newHandler(out, opts)), file: file}, nil
}

// Close flushes and closes the rotating file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if opts.JSON {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
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

// Source tags every record of the returned logger with the emitting component.
func Source(logger *slog.Logger, source string) *slog.Logger {
	return logger.With("source", source)
}

// Discard returns a logger that drops everything. Intended for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
