// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	level, _ := logging.ParseLevel(os.Getenv("LOG_LEVEL"))
//	logger := logging.SetupWithLevel(level)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// SetupWithLevel configures colored logging to stderr at the given level.
func SetupWithLevel(level slog.Level) *slog.Logger {
	return SetupWithWriter(os.Stderr, level)
}

// SetupWithWriter installs a tint logger writing to w as the slog default
// and returns it.
func SetupWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	logger := New(w, level)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger without touching the slog default.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !isTerminal(w),
	}))
}

// ParseLevel maps debug, info, warn or error to a slog level. An empty
// string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
