// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package log configures the process-wide structured logger.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// ParseLevel maps a level name to a slog level. Unknown names map to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text logger writing to w at the given level. A nil w
// writes to stderr so stdout stays free for converter output.
func Setup(level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Get returns the configured logger, setting up an INFO logger on stderr if
// Setup has not been called.
func Get() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Setup("INFO", nil)
	}
	return l
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}
