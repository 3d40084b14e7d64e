package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/scry-cards/internal/config"
)

// ErrInvalidFormat is returned by Setup for an unknown log format.
var ErrInvalidFormat = errors.New("invalid log format")

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured logger writing to w with
// the appropriate level and format, and sets it as the default logger.
//
// An invalid level falls back to info and logs a warning. An invalid format is
// an error.
func Setup(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		// Temporary logger on the same writer, so the warning is not lost.
		slog.New(slog.NewTextHandler(w, nil)).Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger, nil
}

// ParseLevel parses a level name case-insensitively. For an unknown name it
// returns slog.LevelInfo and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
